package attempt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderOrdersByCreation(t *testing.T) {
	store := newMemQuizStore()
	quiz, qs := store.addQuiz(0, "a", "b", "c")
	store.questions[quiz.ID] = append(qs[2:], qs[0], qs[1])
	store.questions[quiz.ID][0].CreatedAt = qs[0].CreatedAt.Add(time.Hour)

	loaded, err := NewLoader(store).Load(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 3)
	assert.Equal(t, qs[0].ID, loaded.Questions[0].ID)
	assert.Equal(t, qs[1].ID, loaded.Questions[1].ID)
	assert.Equal(t, qs[2].ID, loaded.Questions[2].ID)
}

func TestLoaderMissingQuiz(t *testing.T) {
	_, err := NewLoader(newMemQuizStore()).Load(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

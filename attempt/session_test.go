package attempt

import (
	"testing"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSelectOverwrites(t *testing.T) {
	s := NewSession([]string{"q1", "q2"})

	require.NoError(t, s.Select("q1", ChoiceA))
	require.NoError(t, s.Select("q1", ChoiceC))

	got, ok := s.Answer("q1")
	assert.True(t, ok)
	assert.Equal(t, ChoiceC, got)
	assert.Equal(t, models.Answers{"q1": "c"}, s.Snapshot())
}

func TestSessionRejectsUnknownQuestionAndChoice(t *testing.T) {
	s := NewSession([]string{"q1"})

	assert.ErrorIs(t, s.Select("q9", ChoiceA), ErrUnknownQuestion)
	assert.ErrorIs(t, s.Select("q1", Choice("z")), ErrInvalidChoice)
	assert.Empty(t, s.Snapshot())
}

func TestSessionNavigationIsClampedAndKeepsAnswers(t *testing.T) {
	s := NewSession([]string{"q1", "q2", "q3"})
	require.NoError(t, s.Select("q1", ChoiceB))

	assert.Equal(t, 0, s.Previous())
	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 2, s.Next())
	assert.Equal(t, 0, s.Goto(-4))
	assert.Equal(t, 2, s.Goto(42))

	assert.Equal(t, models.Answers{"q1": "b"}, s.Snapshot())
}

func TestSessionAllAnsweredAndUnanswered(t *testing.T) {
	s := NewSession([]string{"q1", "q2", "q3"})
	assert.False(t, s.AllAnswered())
	assert.Equal(t, 3, s.Unanswered())

	require.NoError(t, s.Select("q1", ChoiceA))
	require.NoError(t, s.Select("q2", ChoiceA))
	assert.Equal(t, 1, s.Unanswered())

	require.NoError(t, s.Select("q3", ChoiceA))
	assert.True(t, s.AllAnswered())
	assert.Equal(t, 0, s.Unanswered())
}

func TestSessionEmptyQuiz(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, 0, s.Next())
	assert.True(t, s.AllAnswered())
	assert.Equal(t, 0, s.Unanswered())
}

func TestSessionSnapshotIsACopy(t *testing.T) {
	s := NewSession([]string{"q1"})
	require.NoError(t, s.Select("q1", ChoiceA))

	snap := s.Snapshot()
	snap["q1"] = "d"

	got, _ := s.Answer("q1")
	assert.Equal(t, ChoiceA, got)
}

func TestSessionRestoreDropsStaleEntries(t *testing.T) {
	s := NewSession([]string{"q1", "q2"})
	s.Restore(models.Answers{"q1": "B", "q2": "x", "gone": "a"})

	assert.Equal(t, models.Answers{"q1": "b"}, s.Snapshot())
}

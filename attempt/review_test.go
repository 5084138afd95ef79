package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReview(t *testing.T) {
	qs := questionsWith("a", "b", "c")
	s := NewSession([]string{qs[0].ID.String(), qs[1].ID.String(), qs[2].ID.String()})
	require.NoError(t, s.Select(qs[1].ID.String(), ChoiceD))

	r := BuildReview(qs, s)

	assert.Equal(t, 2, r.UnansweredCount)
	assert.True(t, r.ShowWarning)
	assert.Len(t, r.Items, 3)
	assert.Equal(t, "not answered", r.Items[0].Answer)
	assert.False(t, r.Items[0].Answered)
	assert.Equal(t, "d", r.Items[1].Answer)
	assert.True(t, r.Items[1].Answered)
}

func TestBuildReviewNoWarningWhenComplete(t *testing.T) {
	qs := questionsWith("a")
	s := NewSession([]string{qs[0].ID.String()})
	require.NoError(t, s.Select(qs[0].ID.String(), ChoiceA))

	r := BuildReview(qs, s)

	assert.Equal(t, 0, r.UnansweredCount)
	assert.False(t, r.ShowWarning)
}

package attempt

import (
	"context"
	"fmt"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SubmissionStore persists final answer sheets. FindSubmission returns nil and
// no error when the learner has not submitted yet. CreateSubmission returns
// ErrAlreadySubmitted when a row for the pair exists.
type SubmissionStore interface {
	FindSubmission(ctx context.Context, userID, quizID uuid.UUID) (*models.Submission, error)
	CreateSubmission(ctx context.Context, sub *models.Submission) error
}

type Writer struct {
	store SubmissionStore
}

func NewWriter(store SubmissionStore) *Writer {
	return &Writer{store: store}
}

// Write scores answers and stores the submission in a single insert. It does
// not retry.
func (w *Writer) Write(ctx context.Context, userID uuid.UUID, quiz *LoadedQuiz, answers models.Answers, now time.Time) (*models.Submission, error) {
	sub := &models.Submission{
		UserID:         userID,
		QuizID:         quiz.Quiz.ID,
		Score:          Score(quiz.Questions, answers),
		TotalQuestions: len(quiz.Questions),
		Answers:        datatypes.NewJSONType(answers),
		SubmittedAt:    now,
	}
	if err := w.store.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("write submission: %w", err)
	}
	return sub, nil
}

// Existing returns the stored submission for the pair, or nil.
func (w *Writer) Existing(ctx context.Context, userID, quizID uuid.UUID) (*models.Submission, error) {
	return w.store.FindSubmission(ctx, userID, quizID)
}

package attempt

import (
	"context"
	"fmt"
	"sort"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

// QuizStore reads quizzes and their questions. FindQuiz returns
// ErrQuizNotFound when no such quiz exists.
type QuizStore interface {
	FindQuiz(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error)
	ListQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error)
}

type LoadedQuiz struct {
	Quiz      *models.Quiz
	Questions []models.Question
}

func (l *LoadedQuiz) QuestionIDs() []string {
	ids := make([]string, len(l.Questions))
	for i, q := range l.Questions {
		ids[i] = q.ID.String()
	}
	return ids
}

type Loader struct {
	store QuizStore
}

func NewLoader(store QuizStore) *Loader {
	return &Loader{store: store}
}

// Load fetches the quiz and its questions in display (creation) order.
func (l *Loader) Load(ctx context.Context, quizID uuid.UUID) (*LoadedQuiz, error) {
	quiz, err := l.store.FindQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	questions, err := l.store.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions for quiz %s: %w", quizID, err)
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].CreatedAt.Before(questions[j].CreatedAt)
	})

	return &LoadedQuiz{Quiz: quiz, Questions: questions}, nil
}

package services

import (
	"context"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

// IsTargeted reports whether the quiz is aimed at the student. Explicit
// assignees and groups take precedence; a quiz with neither targets every
// student of its category, narrowed to its level when one is set.
func IsTargeted(quiz *models.Quiz, user *models.User, groupIDs []uuid.UUID) bool {
	if user == nil || user.Role != models.RoleStudent || !user.IsActive {
		return false
	}

	if len(quiz.Assignees) > 0 || len(quiz.Groups) > 0 {
		for _, a := range quiz.Assignees {
			if a != nil && a.ID == user.ID {
				return true
			}
		}
		for _, g := range quiz.Groups {
			if g == nil {
				continue
			}
			for _, id := range groupIDs {
				if g.ID == id {
					return true
				}
			}
		}
		return false
	}

	if user.Category == nil || *user.Category != quiz.Category {
		return false
	}
	if quiz.Level != nil && (user.Level == nil || *user.Level != *quiz.Level) {
		return false
	}
	return true
}

func groupIDsOf(user *models.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(user.Groups))
	for _, g := range user.Groups {
		if g != nil {
			ids = append(ids, g.ID)
		}
	}
	return ids
}

type UserStore interface {
	FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	ActiveStudents(ctx context.Context) ([]models.User, error)
}

type Targeting struct {
	users UserStore
}

func NewTargeting(users UserStore) *Targeting {
	return &Targeting{users: users}
}

// Authorize satisfies attempt.Authorizer.
func (t *Targeting) Authorize(ctx context.Context, userID uuid.UUID, quiz *models.Quiz) error {
	user, err := t.users.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	if !IsTargeted(quiz, user, groupIDsOf(user)) {
		return attempt.ErrNotTargeted
	}
	return nil
}

// Recipients lists the active students a quiz is aimed at.
func (t *Targeting) Recipients(ctx context.Context, quiz *models.Quiz) ([]models.User, error) {
	students, err := t.users.ActiveStudents(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.User
	for i := range students {
		if IsTargeted(quiz, &students[i], groupIDsOf(&students[i])) {
			out = append(out, students[i])
		}
	}
	return out, nil
}

// Visible filters quizzes down to the ones aimed at the user.
func Visible(quizzes []models.Quiz, user *models.User) []models.Quiz {
	groupIDs := groupIDsOf(user)
	var out []models.Quiz
	for i := range quizzes {
		if IsTargeted(&quizzes[i], user, groupIDs) {
			out = append(out, quizzes[i])
		}
	}
	return out
}

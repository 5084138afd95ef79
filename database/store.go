package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm-backed persistence used by the attempt engine and the
// background jobs.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindQuiz(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Groups").
		First(&quiz, "id = ?", quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, attempt.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find quiz %s: %w", quizID, err)
	}
	return &quiz, nil
}

func (s *Store) ListQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("created_at asc").
		Find(&questions).Error
	return questions, err
}

func (s *Store) FindSubmission(ctx context.Context, userID, quizID uuid.UUID) (*models.Submission, error) {
	var sub models.Submission
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateSubmission relies on the (user_id, quiz_id) unique index; a second
// insert for the same pair surfaces as attempt.ErrAlreadySubmitted.
func (s *Store) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	err := s.db.WithContext(ctx).Create(sub).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return attempt.ErrAlreadySubmitted
	}
	return err
}

func (s *Store) FindUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Groups").
		Preload("Parent").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) ActiveStudents(ctx context.Context) ([]models.User, error) {
	var students []models.User
	err := s.db.WithContext(ctx).
		Preload("Groups").
		Where("role = ? AND is_active = ?", models.RoleStudent, true).
		Find(&students).Error
	return students, err
}

// HomeworkDueBetween lists homework whose deadline falls in [from, to).
func (s *Store) HomeworkDueBetween(ctx context.Context, from, to time.Time) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Groups").
		Where("type = ? AND deadline >= ? AND deadline < ?", models.QuizTypeHomework, from, to).
		Find(&quizzes).Error
	return quizzes, err
}

// SubmittedUserIDs returns the set of learners who have a submission for the quiz.
func (s *Store) SubmittedUserIDs(ctx context.Context, quizID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Submission{}).
		Where("quiz_id = ?", quizID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *Store) CreateCertificate(ctx context.Context, cert *models.Certificate) error {
	return s.db.WithContext(ctx).Create(cert).Error
}

func (s *Store) CertificateExists(ctx context.Context, studentID, quizID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Certificate{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count > 0, err
}

// EndedSessions lists class sessions that finished before now and have not
// had their absentees recorded.
func (s *Store) EndedSessions(ctx context.Context, now time.Time) ([]models.ClassSession, error) {
	var sessions []models.ClassSession
	err := s.db.WithContext(ctx).
		Where("ends_at < ? AND absentees_marked = ?", now, false).
		Find(&sessions).Error
	return sessions, err
}

// MarkAbsentees records every enrolled student without a check-in as absent
// and flags the session so it is processed once.
func (s *Store) MarkAbsentees(ctx context.Context, session models.ClassSession) (int, error) {
	marked := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var studentIDs []uuid.UUID
		err := tx.Model(&models.User{}).
			Where("role = ? AND is_active = ? AND category = ? AND level = ?",
				models.RoleStudent, true, session.Category, session.Level).
			Pluck("id", &studentIDs).Error
		if err != nil {
			return err
		}

		for _, id := range studentIDs {
			record := models.AttendanceRecord{
				SessionID: session.ID,
				StudentID: id,
				Status:    models.AttendanceAbsent,
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
			if res.Error != nil {
				return res.Error
			}
			marked += int(res.RowsAffected)
		}

		return tx.Model(&models.ClassSession{}).
			Where("id = ?", session.ID).
			Update("absentees_marked", true).Error
	})
	return marked, err
}

func (s *Store) ConversationParticipants(ctx context.Context, conversationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Table("conversation_participants").
		Where("conversation_id = ?", conversationID).
		Pluck("user_id", &ids).Error
	return ids, err
}

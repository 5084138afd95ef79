package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/notifications"
	"github.com/google/uuid"
)

type HomeworkStore interface {
	HomeworkDueBetween(ctx context.Context, from, to time.Time) ([]models.Quiz, error)
	SubmittedUserIDs(ctx context.Context, quizID uuid.UUID) (map[uuid.UUID]bool, error)
}

type RecipientLister interface {
	Recipients(ctx context.Context, quiz *models.Quiz) ([]models.User, error)
}

// HomeworkReminders emails learners who have not yet submitted homework due
// within the next day. It is meant to run hourly; each run covers the
// one-hour slice of deadlines between 23 and 24 hours out, so every
// learner is reminded once per homework.
type HomeworkReminders struct {
	Store       HomeworkStore
	Recipients  RecipientLister
	Sender      notifications.Sender
	FrontendURL string
	Now         func() time.Time
}

func (r *HomeworkReminders) Run() {
	log.Println("Running job: SendHomeworkReminders...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	now := r.Now()
	quizzes, err := r.Store.HomeworkDueBetween(ctx, now.Add(23*time.Hour), now.Add(24*time.Hour))
	if err != nil {
		log.Printf("Error checking for upcoming homework: %v", err)
		return
	}

	sent := 0
	for i := range quizzes {
		n, err := r.remind(ctx, &quizzes[i])
		if err != nil {
			log.Printf("Error sending reminders for quiz %s: %v", quizzes[i].ID, err)
			continue
		}
		sent += n
	}
	if sent > 0 {
		log.Printf("Sent %d homework reminder(s).", sent)
	}
}

func (r *HomeworkReminders) remind(ctx context.Context, quiz *models.Quiz) (int, error) {
	students, err := r.Recipients.Recipients(ctx, quiz)
	if err != nil {
		return 0, err
	}
	done, err := r.Store.SubmittedUserIDs(ctx, quiz.ID)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, student := range students {
		if done[student.ID] {
			continue
		}
		body, err := notifications.HomeworkReminderEmail(notifications.HomeworkReminderData{
			StudentName: student.FullName,
			QuizTitle:   quiz.Title,
			Deadline:    quiz.Deadline.Format("Mon 2 Jan 15:04"),
			Link:        fmt.Sprintf("%s/quizzes/%s", r.FrontendURL, quiz.ID),
		})
		if err != nil {
			return sent, err
		}
		subject := fmt.Sprintf("Reminder: %s is due tomorrow", quiz.Title)
		if err := r.Sender.Send(student.FullName, student.Email, subject, body); err != nil {
			log.Printf("Failed to send homework reminder to %s: %v", student.Email, err)
			continue
		}
		sent++
	}
	return sent, nil
}

package services

import (
	"context"
	"log"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/notifications"
)

// ResultNotifier emails a student's parent when a submission is stored.
type ResultNotifier struct {
	users  UserStore
	sender notifications.Sender
}

func NewResultNotifier(users UserStore, sender notifications.Sender) *ResultNotifier {
	return &ResultNotifier{users: users, sender: sender}
}

// OnSubmitted is registered as an attempt.SubmitHook.
func (n *ResultNotifier) OnSubmitted(ctx context.Context, sub *models.Submission, quiz *models.Quiz) {
	student, err := n.users.FindUser(ctx, sub.UserID)
	if err != nil {
		log.Printf("🔥 Result mail: failed to load student %s: %v", sub.UserID, err)
		return
	}
	if student.Parent == nil {
		return
	}

	html, err := notifications.QuizResultEmail(notifications.QuizResultData{
		ParentName:  student.Parent.FullName,
		StudentName: student.FullName,
		QuizTitle:   quiz.Title,
		Score:       sub.Score,
		Total:       sub.TotalQuestions,
		Percent:     attempt.Percent(sub.Score, sub.TotalQuestions),
	})
	if err != nil {
		log.Printf("🔥 Result mail: failed to render for quiz %s: %v", quiz.ID, err)
		return
	}

	subject := student.FullName + " completed " + quiz.Title
	if err := n.sender.Send(student.Parent.FullName, student.Parent.Email, subject, html); err != nil {
		log.Printf("🔥 Failed to send result mail to parent of %s: %v", student.ID, err)
	}
}

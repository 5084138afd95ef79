package services

import (
	"context"
	"testing"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	toEmail, subject, html string
}

type recordingSender struct {
	sent []sentMail
}

func (r *recordingSender) Send(_, toEmail, subject, html string) error {
	r.sent = append(r.sent, sentMail{toEmail: toEmail, subject: subject, html: html})
	return nil
}

func TestResultNotifierMailsParent(t *testing.T) {
	parent := &models.User{ID: uuid.New(), FullName: "Grace", Email: "grace@example.com", Role: models.RoleParent}
	child := student(models.CategoryMathematics, 4)
	child.Parent = parent
	orphan := student(models.CategoryMathematics, 4)
	users := &memUsers{users: map[uuid.UUID]*models.User{child.ID: child, orphan.ID: orphan}}
	sender := &recordingSender{}
	n := NewResultNotifier(users, sender)
	quiz := &models.Quiz{ID: uuid.New(), Title: "Fractions"}

	n.OnSubmitted(context.Background(), &models.Submission{UserID: child.ID, Score: 2, TotalQuestions: 3}, quiz)
	n.OnSubmitted(context.Background(), &models.Submission{UserID: orphan.ID, Score: 1, TotalQuestions: 3}, quiz)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "grace@example.com", sender.sent[0].toEmail)
	assert.Equal(t, "Tom completed Fractions", sender.sent[0].subject)
	assert.Contains(t, sender.sent[0].html, "67%")
}

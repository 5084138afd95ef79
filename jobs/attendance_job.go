package jobs

import (
	"context"
	"log"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
)

type AttendanceStore interface {
	EndedSessions(ctx context.Context, now time.Time) ([]models.ClassSession, error)
	MarkAbsentees(ctx context.Context, session models.ClassSession) (int, error)
}

// MarkAbsentees closes out every finished class session, recording students
// who never checked in as absent.
func MarkAbsentees(store AttendanceStore, now func() time.Time) func() {
	return func() {
		log.Println("Running job: MarkAbsentees...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		sessions, err := store.EndedSessions(ctx, now())
		if err != nil {
			log.Printf("Error finding ended class sessions: %v", err)
			return
		}
		if len(sessions) == 0 {
			return
		}

		for _, session := range sessions {
			marked, err := store.MarkAbsentees(ctx, session)
			if err != nil {
				log.Printf("Error marking absentees for session %s: %v", session.ID, err)
				continue
			}
			log.Printf("Marked %d student(s) absent for session %q.", marked, session.Title)
		}
	}
}

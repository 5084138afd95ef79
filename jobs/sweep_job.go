package jobs

import (
	"log"
	"time"
)

type Sweeper interface {
	Sweep(now time.Time) int
}

// SweepAttempts drops in-memory attempts nobody has touched for a while.
func SweepAttempts(s Sweeper, now func() time.Time) func() {
	return func() {
		if n := s.Sweep(now()); n > 0 {
			log.Printf("Evicted %d idle quiz attempt(s).", n)
		}
	}
}

package attempt

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

type State string

const (
	StateLoading   State = "loading"
	StateAnswering State = "answering"
	StateReviewing State = "reviewing"
	StateScoring   State = "scoring"
	StateSubmitted State = "submitted"
	StateCompleted State = "completed"
)

// Attempt is one learner working through one quiz. All methods are safe for
// concurrent use; the timer goroutine and request handlers share the lock.
type Attempt struct {
	mu sync.Mutex

	userID  uuid.UUID
	quiz    *LoadedQuiz
	session *Session
	state   State
	timer   *Timer
	writer  *Writer

	submission *models.Submission
	forced     bool
	// expired is set once the countdown runs out. From then on the answers
	// are frozen and Final Submit is the only way forward.
	expired  bool
	lastUsed time.Time
	now      func() time.Time

	onChange       func(a *Attempt, answers models.Answers)
	onSubmitted    func(a *Attempt, sub *models.Submission, forced bool)
	onSubmitFailed func(a *Attempt, err error, forced bool)
}

type attemptConfig struct {
	writer         *Writer
	now            func() time.Time
	newTicker      TickerFunc
	onTick         func(a *Attempt, remaining int)
	onChange       func(a *Attempt, answers models.Answers)
	onSubmitted    func(a *Attempt, sub *models.Submission, forced bool)
	onSubmitFailed func(a *Attempt, err error, forced bool)
}

func newAttempt(userID uuid.UUID, quiz *LoadedQuiz, cfg attemptConfig) *Attempt {
	if cfg.now == nil {
		cfg.now = time.Now
	}
	a := &Attempt{
		userID:         userID,
		quiz:           quiz,
		session:        NewSession(quiz.QuestionIDs()),
		state:          StateLoading,
		writer:         cfg.writer,
		now:            cfg.now,
		onChange:       cfg.onChange,
		onSubmitted:    cfg.onSubmitted,
		onSubmitFailed: cfg.onSubmitFailed,
	}
	a.lastUsed = a.now()

	if quiz.Quiz.Timed() {
		onTick := func(remaining int) {
			if cfg.onTick != nil {
				cfg.onTick(a, remaining)
			}
		}
		onExpire := func() {
			if _, err := a.forceSubmit(context.Background()); err != nil {
				log.Printf("🔥 Forced submission failed for user %s quiz %s: %v", a.userID, a.QuizID(), err)
			}
		}
		a.timer = NewTimer(quiz.Quiz.TimeLimitMinutes, cfg.newTicker, onTick, onExpire)
	}
	return a
}

// begin moves a freshly loaded attempt into Answering and starts its countdown.
func (a *Attempt) begin(restored models.Answers) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(restored) > 0 {
		a.session.Restore(restored)
	}
	a.state = StateAnswering
	if a.timer != nil {
		a.timer.Start()
	}
}

func (a *Attempt) UserID() uuid.UUID { return a.userID }
func (a *Attempt) QuizID() uuid.UUID { return a.quiz.Quiz.ID }
func (a *Attempt) Quiz() *LoadedQuiz { return a.quiz }

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Expired reports whether the countdown ran out.
func (a *Attempt) Expired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expired
}

// countingDown reports whether the attempt still owns a countdown that must
// end in a submission: a timed attempt that has not been scored yet.
func (a *Attempt) countingDown() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil && (a.state == StateAnswering || a.state == StateReviewing)
}

func (a *Attempt) LastUsed() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastUsed
}

func (a *Attempt) Select(questionID, letter string) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireLocked(StateAnswering); err != nil {
		return a.viewLocked(), err
	}
	choice, err := ParseChoice(letter)
	if err != nil {
		return a.viewLocked(), err
	}
	if err := a.session.Select(questionID, choice); err != nil {
		return a.viewLocked(), err
	}
	if a.onChange != nil {
		a.onChange(a, a.session.Snapshot())
	}
	return a.viewLocked(), nil
}

func (a *Attempt) Next() (View, error) {
	return a.move(func(s *Session) { s.Next() })
}

func (a *Attempt) Previous() (View, error) {
	return a.move(func(s *Session) { s.Previous() })
}

func (a *Attempt) Goto(i int) (View, error) {
	return a.move(func(s *Session) { s.Goto(i) })
}

func (a *Attempt) move(fn func(s *Session)) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireLocked(StateAnswering); err != nil {
		return a.viewLocked(), err
	}
	fn(a.session)
	return a.viewLocked(), nil
}

// EnterReview suspends the countdown and shows every question with its answer.
func (a *Attempt) EnterReview() (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireLocked(StateAnswering); err != nil {
		return a.viewLocked(), err
	}
	a.state = StateReviewing
	if a.timer != nil {
		a.timer.Pause()
	}
	return a.viewLocked(), nil
}

func (a *Attempt) ContinueEditing() (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireLocked(StateReviewing); err != nil {
		return a.viewLocked(), err
	}
	if a.expired {
		return a.viewLocked(), ErrInvalidState
	}
	a.state = StateAnswering
	if a.timer != nil {
		a.timer.Resume()
	}
	return a.viewLocked(), nil
}

// FinalSubmit scores and stores the answers. On a failed write the attempt
// goes back to Reviewing with its answers intact. Once the countdown has run
// out the stored submission is marked forced.
func (a *Attempt) FinalSubmit(ctx context.Context) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.requireLocked(StateReviewing); err != nil {
		return a.viewLocked(), err
	}
	err := a.submitLocked(ctx, a.expired)
	return a.viewLocked(), err
}

// forceSubmit is the timer expiry path. It skips the review stage.
func (a *Attempt) forceSubmit(ctx context.Context) (View, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateAnswering && a.state != StateReviewing {
		return a.viewLocked(), nil
	}
	a.expired = true
	err := a.submitLocked(ctx, true)
	return a.viewLocked(), err
}

func (a *Attempt) submitLocked(ctx context.Context, forced bool) error {
	a.state = StateScoring
	sub, err := a.writer.Write(ctx, a.userID, a.quiz, a.session.Snapshot(), a.now())
	if err != nil {
		if errors.Is(err, ErrAlreadySubmitted) {
			a.state = StateCompleted
			a.stopTimerLocked()
			existing, ferr := a.writer.Existing(ctx, a.userID, a.QuizID())
			if ferr != nil {
				log.Printf("Could not load stored submission for user %s quiz %s: %v", a.userID, a.QuizID(), ferr)
			}
			a.submission = existing
			return err
		}
		a.state = StateReviewing
		if a.onSubmitFailed != nil {
			a.onSubmitFailed(a, err, forced)
		}
		return err
	}

	a.stopTimerLocked()
	a.submission = sub
	a.forced = forced
	a.state = StateSubmitted
	if a.onSubmitted != nil {
		a.onSubmitted(a, sub, forced)
	}
	return nil
}

func (a *Attempt) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
	}
}

// Close tears down the countdown. Answers are left as they are.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopTimerLocked()
}

func (a *Attempt) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.viewLocked()
}

func (a *Attempt) Answers() models.Answers {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Snapshot()
}

func (a *Attempt) Submission() *models.Submission {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.submission
}

func (a *Attempt) requireLocked(want State) error {
	a.lastUsed = a.now()
	if a.state != want {
		return ErrInvalidState
	}
	return nil
}

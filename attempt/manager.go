package attempt

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/google/uuid"
)

const (
	EventTimerUpdate      = "timer_update"
	EventAttemptSubmitted = "attempt_submitted"
	EventSubmitFailed     = "attempt_submit_failed"
)

// Notifier pushes attempt events to the learner's live connection.
type Notifier interface {
	SendToUser(userID uuid.UUID, eventType string, payload interface{})
}

// SubmitHook runs after a submission is stored. Hooks run on their own
// goroutine and cannot affect the learner's result.
type SubmitHook func(ctx context.Context, sub *models.Submission, quiz *models.Quiz)

// Authorizer decides whether a learner may take a quiz. It returns
// ErrNotTargeted when the quiz is not aimed at the learner.
type Authorizer func(ctx context.Context, userID uuid.UUID, quiz *models.Quiz) error

type Options struct {
	Cache       SessionCache
	Notifier    Notifier
	Authorize   Authorizer
	Hooks       []SubmitHook
	IdleTimeout time.Duration
	Now         func() time.Time
	NewTicker   TickerFunc
}

type key struct {
	user uuid.UUID
	quiz uuid.UUID
}

// Manager owns the active attempts of every learner, at most one per
// (learner, quiz) pair.
type Manager struct {
	loader *Loader
	subs   SubmissionStore
	writer *Writer
	opts   Options

	mu       sync.Mutex
	attempts map[key]*Attempt
}

func NewManager(quizzes QuizStore, subs SubmissionStore, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		loader:   NewLoader(quizzes),
		subs:     subs,
		writer:   NewWriter(subs),
		opts:     opts,
		attempts: make(map[key]*Attempt),
	}
}

// Open routes a learner into a quiz: the stored result when they already
// submitted, the running attempt when one exists, a new attempt otherwise.
func (m *Manager) Open(ctx context.Context, userID, quizID uuid.UUID) (View, error) {
	k := key{user: userID, quiz: quizID}
	if a := m.lookup(k); a != nil {
		switch a.State() {
		case StateSubmitted, StateCompleted:
			m.remove(k)
		default:
			return a.View(), nil
		}
	}

	existing, err := m.subs.FindSubmission(ctx, userID, quizID)
	if err != nil {
		return View{}, err
	}

	quiz, err := m.loader.Load(ctx, quizID)
	if err != nil {
		return View{}, err
	}
	if existing != nil {
		return CompletedView(quiz.Quiz, existing), nil
	}

	if m.opts.Authorize != nil {
		if err := m.opts.Authorize(ctx, userID, quiz.Quiz); err != nil {
			return View{}, err
		}
	}
	if quiz.Quiz.DeadlinePassed(m.opts.Now()) {
		return View{}, ErrDeadlinePassed
	}

	var restored models.Answers
	if m.opts.Cache != nil {
		restored, err = m.opts.Cache.Load(ctx, userID, quizID)
		if err != nil {
			log.Printf("Could not restore answers for user %s quiz %s: %v", userID, quizID, err)
		}
	}

	a := newAttempt(userID, quiz, attemptConfig{
		writer:         m.writer,
		now:            m.opts.Now,
		newTicker:      m.opts.NewTicker,
		onTick:         m.handleTick,
		onChange:       m.handleChange,
		onSubmitted:    m.handleSubmitted,
		onSubmitFailed: m.handleSubmitFailed,
	})

	m.mu.Lock()
	if running, ok := m.attempts[k]; ok {
		m.mu.Unlock()
		return running.View(), nil
	}
	m.attempts[k] = a
	m.mu.Unlock()

	a.begin(restored)
	log.Printf("Learner %s started quiz %s (%d questions, limit %d min)", userID, quizID, len(quiz.Questions), quiz.Quiz.TimeLimitMinutes)
	return a.View(), nil
}

// Get returns the learner's running or just-submitted attempt.
func (m *Manager) Get(userID, quizID uuid.UUID) (*Attempt, error) {
	if a := m.lookup(key{user: userID, quiz: quizID}); a != nil {
		return a, nil
	}
	return nil, ErrAttemptNotFound
}

// Discard drops an unfinished attempt and its cached answers, as when the
// learner navigates away without submitting.
func (m *Manager) Discard(ctx context.Context, userID, quizID uuid.UUID) error {
	k := key{user: userID, quiz: quizID}
	a := m.remove(k)
	if a == nil {
		return ErrAttemptNotFound
	}
	a.Close()
	if m.opts.Cache != nil {
		if err := m.opts.Cache.Delete(ctx, userID, quizID); err != nil {
			log.Printf("Failed to clear cached answers for user %s quiz %s: %v", userID, quizID, err)
		}
	}
	return nil
}

// Sweep evicts attempts idle longer than the configured timeout. Cached
// answers are kept so the learner can resume. Timed attempts that have not
// been scored stay put: their countdown keeps running without the learner
// and ends in a forced submission.
func (m *Manager) Sweep(now time.Time) int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	var stale []*Attempt
	m.mu.Lock()
	for k, a := range m.attempts {
		if a.countingDown() {
			continue
		}
		if now.Sub(a.LastUsed()) > m.opts.IdleTimeout {
			stale = append(stale, a)
			delete(m.attempts, k)
		}
	}
	m.mu.Unlock()

	for _, a := range stale {
		a.Close()
	}
	return len(stale)
}

// Shutdown stops every running countdown.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	attempts := m.attempts
	m.attempts = make(map[key]*Attempt)
	m.mu.Unlock()
	for _, a := range attempts {
		a.Close()
	}
}

func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

func (m *Manager) lookup(k key) *Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts[k]
}

func (m *Manager) remove(k key) *Attempt {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.attempts[k]
	delete(m.attempts, k)
	return a
}

func (m *Manager) handleTick(a *Attempt, remaining int) {
	if m.opts.Notifier == nil {
		return
	}
	m.opts.Notifier.SendToUser(a.UserID(), EventTimerUpdate, map[string]interface{}{
		"quiz_id":           a.QuizID(),
		"remaining_seconds": remaining,
	})
}

func (m *Manager) handleChange(a *Attempt, answers models.Answers) {
	if m.opts.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.opts.Cache.Save(ctx, a.UserID(), a.QuizID(), answers); err != nil {
		log.Printf("Failed to cache answers for user %s quiz %s: %v", a.UserID(), a.QuizID(), err)
	}
}

func (m *Manager) handleSubmitFailed(a *Attempt, err error, forced bool) {
	log.Printf("🔥 Could not store submission for user %s quiz %s (forced=%t): %v", a.UserID(), a.QuizID(), forced, err)
	if m.opts.Notifier == nil {
		return
	}
	m.opts.Notifier.SendToUser(a.UserID(), EventSubmitFailed, map[string]interface{}{
		"quiz_id": a.QuizID(),
		"forced":  forced,
	})
}

func (m *Manager) handleSubmitted(a *Attempt, sub *models.Submission, forced bool) {
	log.Printf("✅ Learner %s submitted quiz %s: %d/%d (forced=%t)", sub.UserID, sub.QuizID, sub.Score, sub.TotalQuestions, forced)

	if m.opts.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := m.opts.Cache.Delete(ctx, sub.UserID, sub.QuizID); err != nil {
			log.Printf("Failed to clear cached answers for user %s quiz %s: %v", sub.UserID, sub.QuizID, err)
		}
		cancel()
	}

	if m.opts.Notifier != nil {
		m.opts.Notifier.SendToUser(sub.UserID, EventAttemptSubmitted, map[string]interface{}{
			"quiz_id":         sub.QuizID,
			"score":           sub.Score,
			"total_questions": sub.TotalQuestions,
			"forced":          forced,
		})
	}

	quiz := a.Quiz().Quiz
	for _, hook := range m.opts.Hooks {
		go hook(context.Background(), sub, quiz)
	}
}

package attempt

import "errors"

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("no active attempt for this quiz")
	ErrUnknownQuestion  = errors.New("question does not belong to this quiz")
	ErrInvalidChoice    = errors.New("choice must be one of a, b, c, d")
	ErrInvalidState     = errors.New("operation not allowed in the current attempt state")
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrNotTargeted      = errors.New("quiz is not assigned to this learner")
	ErrDeadlinePassed   = errors.New("quiz deadline has passed")
)

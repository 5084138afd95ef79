package attempt

import "strings"

// Choice is one of the four option letters of a question.
type Choice string

const (
	ChoiceA Choice = "a"
	ChoiceB Choice = "b"
	ChoiceC Choice = "c"
	ChoiceD Choice = "d"
)

// ParseChoice accepts a single letter in either case, surrounding spaces ignored.
func ParseChoice(s string) (Choice, error) {
	switch c := Choice(normalize(s)); c {
	case ChoiceA, ChoiceB, ChoiceC, ChoiceD:
		return c, nil
	}
	return "", ErrInvalidChoice
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

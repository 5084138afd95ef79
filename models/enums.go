package models

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleAdmin:
		return true
	}
	return false
}

type QuizType string

const (
	QuizTypeQuiz     QuizType = "quiz"
	QuizTypeHomework QuizType = "homework"
)

func (t QuizType) Valid() bool {
	return t == QuizTypeQuiz || t == QuizTypeHomework
}

// Category is the subject area a learner is enrolled in and a quiz or class session
// is aimed at.
type Category string

const (
	CategoryMathematics Category = "mathematics"
	CategoryEnglish     Category = "english"
	CategoryScience     Category = "science"
	CategoryChinese     Category = "chinese"
	CategoryHumanities  Category = "humanities"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryMathematics, CategoryEnglish, CategoryScience, CategoryChinese, CategoryHumanities:
		return true
	}
	return false
}

const (
	MinLevel = 1
	MaxLevel = 12
)

func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

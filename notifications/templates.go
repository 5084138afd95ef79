package notifications

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type QuizResultData struct {
	ParentName  string
	StudentName string
	QuizTitle   string
	Score       int
	Total       int
	Percent     int
}

type HomeworkReminderData struct {
	StudentName string
	QuizTitle   string
	Deadline    string
	Link        string
}

type WelcomeData struct {
	FullName string
	Role     string
	LoginURL string
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func QuizResultEmail(data QuizResultData) (string, error) {
	return render("quiz_result.html", data)
}

func HomeworkReminderEmail(data HomeworkReminderData) (string, error) {
	return render("homework_reminder.html", data)
}

func WelcomeEmail(data WelcomeData) (string, error) {
	return render("welcome.html", data)
}

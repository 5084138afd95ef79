package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportHandler struct {
	db *gorm.DB
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{db: db}
}

func sendCSV(c *fiber.Ctx, filename string, header []string, rows [][]string) error {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)
	if err := w.Write(header); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to write CSV header")
	}
	if err := w.WriteAll(rows); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to write CSV rows")
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(b.Bytes())
}

func (h *ReportHandler) QuizReport(c *fiber.Ctx) error {
	quizID, err := paramUUID(c, "quizId")
	if err != nil {
		return err
	}
	var quiz models.Quiz
	if err := h.db.First(&quiz, "id = ?", quizID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Quiz not found")
	}

	var submissions []models.Submission
	err = h.db.Preload("User").
		Where("quiz_id = ?", quizID).
		Order("submitted_at asc").
		Find(&submissions).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch submissions")
	}

	rows := make([][]string, 0, len(submissions))
	for _, s := range submissions {
		rows = append(rows, []string{
			s.User.FullName,
			s.User.Email,
			strconv.Itoa(s.Score),
			strconv.Itoa(s.TotalQuestions),
			strconv.Itoa(attempt.Percent(s.Score, s.TotalQuestions)),
			s.SubmittedAt.Format("2006-01-02 15:04"),
		})
	}
	header := []string{"Student", "Email", "Score", "Total", "Percent", "Submitted At"}
	return sendCSV(c, fmt.Sprintf("quiz_%s.csv", quiz.ID), header, rows)
}

// AttendanceReport exports attendance for sessions that started in [start_date, end_date].
func (h *ReportHandler) AttendanceReport(c *fiber.Ctx) error {
	startDate, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD.")
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid end_date format. Use YYYY-MM-DD.")
	}
	endDate = endDate.Add(24*time.Hour - time.Nanosecond)

	var records []models.AttendanceRecord
	err = h.db.Preload("Session").Preload("Student").
		Joins("JOIN class_sessions ON class_sessions.id = attendance_records.session_id").
		Where("class_sessions.starts_at BETWEEN ? AND ?", startDate, endDate).
		Order("class_sessions.starts_at asc").
		Find(&records).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		checkedIn := ""
		if r.CheckedInAt != nil {
			checkedIn = r.CheckedInAt.Format("15:04")
		}
		rows = append(rows, []string{
			r.Session.StartsAt.Format("2006-01-02 15:04"),
			r.Session.Title,
			string(r.Session.Category),
			strconv.Itoa(r.Session.Level),
			r.Student.FullName,
			string(r.Status),
			checkedIn,
		})
	}
	header := []string{"Date", "Session", "Category", "Level", "Student", "Status", "Checked In"}
	filename := fmt.Sprintf("attendance_%s_to_%s.csv", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	return sendCSV(c, filename, header, rows)
}

package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AttendanceHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{db: db, now: time.Now}
}

type SessionRequest struct {
	Title    string          `json:"title" validate:"required"`
	Category models.Category `json:"category" validate:"required,oneof=mathematics english science chinese humanities"`
	Level    int             `json:"level" validate:"required,min=1,max=12"`
	StartsAt time.Time       `json:"starts_at" validate:"required"`
	EndsAt   time.Time       `json:"ends_at" validate:"required,gtfield=StartsAt"`
}

// CreateSession schedules a class and issues the code students scan to check in.
func (h *AttendanceHandler) CreateSession(c *fiber.Ctx) error {
	var req SessionRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	session := models.ClassSession{
		Title:    req.Title,
		Category: req.Category,
		Level:    req.Level,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	err := h.db.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueCheckInCode(tx)
		if err != nil {
			return err
		}
		session.CheckInToken = code
		return tx.Create(&session).Error
	})
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *AttendanceHandler) ListSessions(c *fiber.Ctx) error {
	var sessions []models.ClassSession
	if err := h.db.Order("starts_at desc").Limit(100).Find(&sessions).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch sessions")
	}
	return c.JSON(sessions)
}

func (h *AttendanceHandler) SessionAttendance(c *fiber.Ctx) error {
	sessionID, err := paramUUID(c, "sessionId")
	if err != nil {
		return err
	}
	var records []models.AttendanceRecord
	err = h.db.Preload("Student").
		Where("session_id = ?", sessionID).
		Find(&records).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}
	return c.JSON(records)
}

var (
	errSessionClosed = errors.New("check-in is only open while the session runs")
	errWrongClass    = errors.New("this session is not for your class")
)

// checkInOpensBefore is how early before the start a student may check in.
const checkInOpensBefore = 15 * time.Minute

// checkInAllowed reports why a student may not check in to a session right now.
func checkInAllowed(session *models.ClassSession, student *models.User, now time.Time) error {
	if now.Before(session.StartsAt.Add(-checkInOpensBefore)) || now.After(session.EndsAt) {
		return fiber.NewError(fiber.StatusConflict, errSessionClosed.Error())
	}
	if student.Category == nil || *student.Category != session.Category || student.Level == nil || *student.Level != session.Level {
		return fiber.NewError(fiber.StatusForbidden, errWrongClass.Error())
	}
	return nil
}

// CheckIn marks the calling student present for the session the code belongs to.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var session models.ClassSession
	if err := h.db.First(&session, "check_in_token = ?", strings.ToUpper(strings.TrimSpace(req.Token))).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Invalid check-in code")
	}

	var student models.User
	if err := h.db.First(&student, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}

	now := h.now()
	if err := checkInAllowed(&session, &student, now); err != nil {
		return err
	}

	record := models.AttendanceRecord{
		SessionID:   session.ID,
		StudentID:   userID,
		Status:      models.AttendancePresent,
		CheckedInAt: &now,
	}
	err = h.db.Where(models.AttendanceRecord{SessionID: session.ID, StudentID: userID}).
		Assign(models.AttendanceRecord{Status: models.AttendancePresent, CheckedInAt: &now}).
		FirstOrCreate(&record).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to record attendance")
	}
	return c.JSON(record)
}

package handlers

import (
	"errors"
	"strconv"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/notifications"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db   *gorm.DB
	auth *AuthHandler
}

func NewAdminHandler(db *gorm.DB, cfg *config.Config, mailer notifications.Sender) *AdminHandler {
	return &AdminHandler{db: db, auth: NewAuthHandler(db, cfg, mailer)}
}

type CreateUserRequest struct {
	FullName string          `json:"full_name" validate:"required,min=3"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.Role     `json:"role" validate:"required,oneof=student parent admin"`
	Category models.Category `json:"category" validate:"omitempty,oneof=mathematics english science chinese humanities"`
	Level    int             `json:"level" validate:"omitempty,min=1,max=12"`
	ParentID string          `json:"parent_id" validate:"omitempty,uuid"`
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}

	query := h.db.Model(&models.User{})
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Database error")
	}

	var users []models.User
	if err := query.Order("full_name asc").Limit(pageSize).Offset((page - 1) * pageSize).Find(&users).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(fiber.Map{"data": users, "total": total, "page": page})
}

func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     req.Role,
		IsActive: true,
	}
	if req.Role == models.RoleStudent {
		if req.Category == "" || req.Level == 0 {
			return jsonError(c, fiber.StatusBadRequest, "Students need a category and level")
		}
		category, level := req.Category, req.Level
		user.Category = &category
		user.Level = &level
		if req.ParentID != "" {
			parentID := uuid.MustParse(req.ParentID)
			var parent models.User
			if err := h.db.First(&parent, "id = ? AND role = ?", parentID, models.RoleParent).Error; err != nil {
				return jsonError(c, fiber.StatusBadRequest, "Parent not found")
			}
			user.ParentID = &parentID
		}
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	go h.auth.sendWelcome(user)

	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	var req struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result := h.db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", *req.IsActive)
	if result.Error != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	if result.RowsAffected == 0 {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(fiber.Map{"message": "User status updated"})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Association("Groups").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("parent_id = ?", userID).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name" validate:"required,min=2"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	group := models.Group{Name: req.Name}
	if err := h.db.Create(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "Group already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create group")
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *AdminHandler) ListGroups(c *fiber.Ctx) error {
	var groups []models.Group
	if err := h.db.Preload("Members").Order("name asc").Find(&groups).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Database error")
	}
	return c.JSON(groups)
}

// SetGroupMembers replaces a group's member list with the given students.
func (h *AdminHandler) SetGroupMembers(c *fiber.Ctx) error {
	groupID, err := paramUUID(c, "groupId")
	if err != nil {
		return err
	}
	var req struct {
		StudentIDs []string `json:"student_ids" validate:"dive,uuid"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var group models.Group
	if err := h.db.First(&group, "id = ?", groupID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Group not found")
	}

	var students []*models.User
	if len(req.StudentIDs) > 0 {
		if err := h.db.Where("id IN ? AND role = ?", req.StudentIDs, models.RoleStudent).Find(&students).Error; err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "Failed to find students")
		}
		if len(students) != len(req.StudentIDs) {
			return jsonError(c, fiber.StatusBadRequest, "One or more student IDs are invalid")
		}
	}

	if err := h.db.Model(&group).Association("Members").Replace(students); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update group members")
	}
	group.Members = students
	return c.JSON(group)
}

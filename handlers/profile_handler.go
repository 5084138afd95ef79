package handlers

import (
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfileHandler struct {
	db *gorm.DB
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name" validate:"omitempty,min=3"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.Preload("Groups").First(&user, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if err := h.db.Save(&user).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return c.JSON(user)
}

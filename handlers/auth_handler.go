package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/notifications"
	"github.com/anjiri1684/tutoring_center/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer notifications.Sender
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer notifications.Sender) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer}
}

type RegisterRequest struct {
	FullName string          `json:"full_name" validate:"required,min=3"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Category models.Category `json:"category" validate:"required,oneof=mathematics english science chinese humanities"`
	Level    int             `json:"level" validate:"required,min=1,max=12"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func (h *AuthHandler) sendWelcome(u models.User) {
	html, err := notifications.WelcomeEmail(notifications.WelcomeData{
		FullName: u.FullName,
		Role:     string(u.Role),
		LoginURL: h.cfg.FrontendURL + "/login",
	})
	if err != nil {
		log.Printf("🔥 Failed to render welcome email: %v", err)
		return
	}
	if err := h.mailer.Send(u.FullName, u.Email, "Welcome to the Tutoring Center", html); err != nil {
		log.Printf("🔥 Failed to send welcome email to %s: %v", u.Email, err)
	}
}

// Register creates a student account. Parents and admins are created by an admin.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	category := req.Category
	level := req.Level
	user := models.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
		Category: &category,
		Level:    &level,
		IsActive: true,
	}
	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return jsonError(c, fiber.StatusConflict, "Email already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	go h.sendWelcome(user)

	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// checkLogin rejects a wrong password with 401 before reporting a
// deactivated account.
func checkLogin(user *models.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is deactivated")
	}
	return nil
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return jsonError(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err := checkLogin(&user, req.Password); err != nil {
		return err
	}

	t, err := middleware.GenerateToken(h.cfg.JWTSecret, h.cfg.JWTTTL, user.ID, user.Role)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create token")
	}

	return c.JSON(fiber.Map{"token": t, "user": toUserResponse(user)})
}

const resetRequestedMessage = "If an account with that email exists, a password reset link has been sent."

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(fiber.Map{"message": resetRequestedMessage})
	}

	token, err := utils.RandomToken(32)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate reset token")
	}
	expiration := time.Now().Add(resetTokenTTL)
	err = h.db.Model(&user).Updates(map[string]interface{}{
		"reset_password_token":            token,
		"reset_password_token_expires_at": expiration,
	}).Error
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to save reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", h.cfg.FrontendURL, token)
	go func() {
		html := fmt.Sprintf("<h1>Password Reset</h1><p>This link is valid for 15 minutes.</p><p><a href='%s'>Reset Password</a></p>", resetLink)
		if err := h.mailer.Send(user.FullName, user.Email, "Your Password Reset Link", html); err != nil {
			log.Printf("🔥 Failed to send reset email to %s: %v", user.Email, err)
		}
	}()

	return c.JSON(fiber.Map{"message": resetRequestedMessage})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=6"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var user models.User
	if err := h.db.Where("reset_password_token = ?", req.Token).First(&user).Error; err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	fields := map[string]interface{}{
		"reset_password_token":            nil,
		"reset_password_token_expires_at": nil,
	}
	if user.ResetPasswordTokenExpiresAt == nil || user.ResetPasswordTokenExpiresAt.Before(time.Now()) {
		if err := h.db.Model(&user).Updates(fields).Error; err != nil {
			log.Printf("Failed to clear expired reset token for %s: %v", user.Email, err)
		}
		return jsonError(c, fiber.StatusBadRequest, "Invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	fields["password"] = string(hashedPassword)
	if err := h.db.Model(&user).Updates(fields).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return c.JSON(fiber.Map{"message": "Password has been reset successfully."})
}

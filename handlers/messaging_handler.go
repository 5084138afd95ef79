package handlers

import (
	"log"
	"strconv"

	"github.com/anjiri1684/tutoring_center/middleware"
	"github.com/anjiri1684/tutoring_center/models"
	"github.com/anjiri1684/tutoring_center/websocket"
	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessagingHandler struct {
	db     *gorm.DB
	hub    *websocket.Hub
	secret string
}

func NewMessagingHandler(db *gorm.DB, hub *websocket.Hub, secret string) *MessagingHandler {
	return &MessagingHandler{db: db, hub: hub, secret: secret}
}

func (h *MessagingHandler) isParticipant(conversationID, userID uuid.UUID) bool {
	var count int64
	err := h.db.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		log.Printf("Failed to check participants of conversation %s: %v", conversationID, err)
		return false
	}
	return count > 0
}

func (h *MessagingHandler) GetUserConversations(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var user models.User
	if err := h.db.Preload("Conversations.Participants").First(&user, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	return c.JSON(user.Conversations)
}

func (h *MessagingHandler) GetConversationMessages(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	conversationID, err := paramUUID(c, "conversationId")
	if err != nil {
		return err
	}
	if !h.isParticipant(conversationID, userID) {
		return jsonError(c, fiber.StatusForbidden, "Not a participant in this conversation")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}

	var messages []models.Message
	if err := h.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to fetch messages")
	}
	return c.JSON(messages)
}

// CreateOrGetConversation opens a one-to-one thread. Every thread includes
// an admin: students and parents talk to the center, not to each other.
func (h *MessagingHandler) CreateOrGetConversation(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req struct {
		RecipientID string `json:"recipient_id" validate:"required,uuid"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	recipientID := uuid.MustParse(req.RecipientID)
	if recipientID == userID {
		return jsonError(c, fiber.StatusBadRequest, "Cannot message yourself")
	}

	var conversation models.Conversation
	err = h.db.
		Joins("JOIN conversation_participants cp1 ON cp1.conversation_id = conversations.id AND cp1.user_id = ?", userID).
		Joins("JOIN conversation_participants cp2 ON cp2.conversation_id = conversations.id AND cp2.user_id = ?", recipientID).
		First(&conversation).Error
	if err == nil {
		return c.JSON(conversation)
	}

	var sender, recipient models.User
	if err := h.db.First(&sender, "id = ?", userID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "User not found")
	}
	if err := h.db.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return jsonError(c, fiber.StatusNotFound, "Recipient not found")
	}
	if sender.Role != models.RoleAdmin && recipient.Role != models.RoleAdmin {
		return jsonError(c, fiber.StatusForbidden, "Conversations must include a center administrator")
	}

	conversation = models.Conversation{Participants: []*models.User{&sender, &recipient}}
	if err := h.db.Create(&conversation).Error; err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to create conversation")
	}
	return c.Status(fiber.StatusCreated).JSON(conversation)
}

type authFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// ServeWs authenticates the socket from its first frame, then relays chat
// messages. Quiz timer and submission events reach the socket through the hub.
func (h *MessagingHandler) ServeWs(c *websocketcontrib.Conn) {
	var auth authFrame
	if err := c.ReadJSON(&auth); err != nil || auth.Type != "auth" {
		log.Printf("WebSocket auth failed: invalid or missing auth message: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	userID, _, err := middleware.ParseToken(h.secret, auth.Token)
	if err != nil {
		log.Printf("WebSocket auth failed: invalid token: %v", err)
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	h.hub.Register(client)
	defer func() {
		h.hub.Unregister(client)
		c.Close()
	}()

	for {
		var msg websocket.MessagePayload
		if err := c.ReadJSON(&msg); err != nil {
			if websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseNormalClosure) {
				log.Printf("WebSocket closed for client %s", userID)
			} else {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			return
		}

		conversationID, err := uuid.Parse(msg.ConversationID)
		if err != nil || msg.Content == "" || !h.isParticipant(conversationID, userID) {
			h.hub.SendToUser(userID, "error", fiber.Map{"error": "Invalid conversation or empty message"})
			continue
		}

		message := models.Message{
			ConversationID: conversationID,
			SenderID:       userID,
			Content:        msg.Content,
		}
		if err := h.db.Create(&message).Error; err != nil {
			log.Printf("Failed to save message for client %s: %v", userID, err)
			h.hub.SendToUser(userID, "error", fiber.Map{"error": "Failed to save message"})
			continue
		}
		if err := h.db.Model(&models.Conversation{}).Where("id = ?", conversationID).Update("updated_at", message.CreatedAt).Error; err != nil {
			log.Printf("Failed to bump conversation %s: %v", conversationID, err)
		}
		h.hub.Broadcast(&message)
	}
}

package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func MessagingRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api/v1")

	conversations := api.Group("/conversations", h.protected())
	conversations.Get("", h.Messaging.GetUserConversations)
	conversations.Post("", h.Messaging.CreateOrGetConversation)
	conversations.Get("/:conversationId/messages", h.Messaging.GetConversationMessages)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(h.Messaging.ServeWs))
}

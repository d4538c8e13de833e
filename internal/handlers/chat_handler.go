package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) HandleMessage(c *fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	history := make([]services.ChatMessage, 0, len(req.ConversationHistory))
	for _, turn := range req.ConversationHistory {
		history = append(history, services.ChatMessage{Role: turn.Role, Content: turn.Content})
	}

	reply, err := h.chatService.Continue(c.UserContext(), history, req.Message)
	if err != nil {
		log.Printf("❌ Chat failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(serverErrorBody)
	}

	return c.JSON(models.ChatResponse{Reply: reply})
}

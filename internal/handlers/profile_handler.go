package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
	"rezoom/feedback-api/internal/services"
)

type ProfileHandler struct {
	authService     services.AuthService
	feedbackService services.FeedbackService
}

func NewProfileHandler(authService services.AuthService, feedbackService services.FeedbackService) *ProfileHandler {
	return &ProfileHandler{
		authService:     authService,
		feedbackService: feedbackService,
	}
}

// HandleGetProfile returns the profile with the feedback history oldest
// first, the order the score chart is drawn in.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	email := currentUser(c)

	user, err := h.authService.Profile(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load profile"})
	}

	history, err := h.feedbackService.History(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load feedback history"})
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	return c.JSON(models.ProfileResponse{
		Email: user.Email,
		Profile: models.ProfileRequest{
			Name:       user.Name,
			Age:        user.Age,
			University: user.University,
			GPA:        user.GPA,
			Nickname:   user.Nickname,
		},
		FeedbackHistory: models.NewFeedbackDetails(history),
	})
}

func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := h.authService.UpdateProfile(currentUser(c), &req); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update profile"})
	}

	return c.JSON(fiber.Map{"message": "profile updated"})
}

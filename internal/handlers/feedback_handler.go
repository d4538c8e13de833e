package handlers

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
	"rezoom/feedback-api/internal/services"
)

const (
	defaultSimilarLimit = 3
	maxSimilarLimit     = 10
)

// Body returned for any model failure. The cause only goes to the log.
var serverErrorBody = fiber.Map{"error": "서버 오류"}

type FeedbackHandler struct {
	feedbackService services.FeedbackService
	storageService  services.StorageService
}

func NewFeedbackHandler(feedbackService services.FeedbackService, storageService services.StorageService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		storageService:  storageService,
	}
}

// HandleSubmit takes a multipart form with "file" (PDF), "company" and
// "position" and answers with the critique. The upload is deleted once
// processed.
func (h *FeedbackHandler) HandleSubmit(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "a PDF file is required in the 'file' field",
		})
	}

	stored, err := h.storageService.SaveUpload(fileHeader)
	if err != nil {
		if errors.Is(err, services.ErrNotPDF) || errors.Is(err, services.ErrFileTooLarge) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("❌ Failed to save upload: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save uploaded file",
		})
	}
	defer func() {
		if err := h.storageService.Remove(stored.Path); err != nil {
			log.Printf("⚠️  %v\n", err)
		}
	}()

	result, err := h.feedbackService.Submit(c.UserContext(), services.SubmitInput{
		UserEmail: currentUser(c),
		Company:   strings.TrimSpace(c.FormValue("company")),
		Position:  strings.TrimSpace(c.FormValue("position")),
		Filename:  stored.OriginalName,
		FilePath:  stored.Path,
	})
	if err != nil {
		log.Printf("❌ Feedback generation failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(serverErrorBody)
	}

	response := models.SubmitFeedbackResponse{
		Feedback: result.Feedback,
		Todo:     result.Todo,
	}
	if result.ID != nil {
		response.ID = result.ID.String()
	}

	return c.JSON(response)
}

func (h *FeedbackHandler) HandleHistory(c *fiber.Ctx) error {
	feedbacks, err := h.feedbackService.History(currentUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load feedback history",
		})
	}

	return c.JSON(fiber.Map{"feedbacks": models.NewFeedbackDetails(feedbacks)})
}

func (h *FeedbackHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid feedback ID format",
		})
	}

	feedback, err := h.feedbackService.Get(id, currentUser(c))
	if err != nil {
		return notFoundOrError(c, err)
	}

	return c.JSON(models.NewFeedbackDetail(*feedback))
}

func (h *FeedbackHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid feedback ID format",
		})
	}

	limit := c.QueryInt("limit", defaultSimilarLimit)
	if limit <= 0 || limit > maxSimilarLimit {
		limit = defaultSimilarLimit
	}

	similar, err := h.feedbackService.Similar(c.UserContext(), id, currentUser(c), limit)
	if err != nil {
		return notFoundOrError(c, err)
	}

	return c.JSON(fiber.Map{"feedbacks": models.NewFeedbackDetails(similar)})
}

// HandleTodo lists every stored to-do list of the user, newest first.
func (h *FeedbackHandler) HandleTodo(c *fiber.Ctx) error {
	todos, err := h.feedbackService.Todos(currentUser(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load to-do lists",
		})
	}

	return c.JSON(fiber.Map{"todos": models.NewFeedbackDetails(todos)})
}

func notFoundOrError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "feedback not found",
		})
	}
	log.Printf("❌ %v\n", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "failed to load feedback",
	})
}

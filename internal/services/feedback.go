package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rezoom/feedback-api/internal/metrics"
	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
)

type SubmitInput struct {
	UserEmail string
	Company   string
	Position  string
	Filename  string
	FilePath  string
}

// SubmitResult is what the submitter sees. The score stays in the record.
type SubmitResult struct {
	ID       *uuid.UUID
	Feedback string
	Todo     string
}

type FeedbackService interface {
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	Get(id uuid.UUID, userEmail string) (*models.Feedback, error)
	History(userEmail string) ([]models.Feedback, error)
	Todos(userEmail string) ([]models.Feedback, error)
	Similar(ctx context.Context, id uuid.UUID, userEmail string, limit int) ([]models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo  repositories.FeedbackRepository
	geminiService GeminiService
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	splitter      ReplySplitter
	index         FeedbackIndex
	queue         IndexQueue
	recorder      *metrics.Recorder
	summaryLength int
}

type FeedbackServiceConfig struct {
	PromptBuilder *PromptBuilder
	Splitter      ReplySplitter
	Index         FeedbackIndex
	// Queue may be nil when indexing is disabled.
	Queue         IndexQueue
	Recorder      *metrics.Recorder
	SummaryLength int
}

func NewFeedbackService(
	feedbackRepo repositories.FeedbackRepository,
	geminiService GeminiService,
	pdfParser PDFParserService,
	cfg FeedbackServiceConfig,
) FeedbackService {
	if cfg.Index == nil {
		cfg.Index = noopIndex{}
	}
	if cfg.SummaryLength <= 0 {
		cfg.SummaryLength = 60
	}

	return &feedbackService{
		feedbackRepo:  feedbackRepo,
		geminiService: geminiService,
		pdfParser:     pdfParser,
		promptBuilder: cfg.PromptBuilder,
		splitter:      cfg.Splitter,
		index:         cfg.Index,
		queue:         cfg.Queue,
		recorder:      cfg.Recorder,
		summaryLength: cfg.SummaryLength,
	}
}

// Submit runs one critique end to end: extract, prompt, model call, split,
// persist. A model transport error aborts before anything is stored; an
// empty model answer is stored as the placeholder reply.
func (s *feedbackService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	log.Printf("📄 Extracting text from %s\n", in.Filename)
	content, err := s.pdfParser.ExtractText(in.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document text: %w", err)
	}

	prompt := s.promptBuilder.BuildFeedbackPrompt(in.Company, in.Position, content.Text)
	log.Printf("📝 Feedback prompt length: %d characters\n", len(prompt))

	log.Println("🤖 Requesting feedback from model...")
	reply, err := s.geminiService.GenerateText(ctx, FeedbackSystemInstruction, prompt)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		log.Println("⚠️ Empty response received from model")
		s.recorder.ObserveModelCall("feedback", "empty")
		reply = ReplyErrorPlaceholder
	case err != nil:
		s.recorder.ObserveModelCall("feedback", "error")
		return nil, fmt.Errorf("failed to generate feedback: %w", err)
	default:
		s.recorder.ObserveModelCall("feedback", "ok")
	}

	split := s.splitter.Split(reply)
	s.recorder.ObserveSplit(split.Header, split.Score != nil)
	if split.Header == HeaderNone {
		log.Println("⚠️ No to-do header found in model reply")
	}

	record := &models.Feedback{
		ID:           uuid.New(),
		UserEmail:    in.UserEmail,
		Company:      in.Company,
		Position:     in.Position,
		Filename:     in.Filename,
		Summary:      Summarize(split.Feedback, s.summaryLength),
		FullFeedback: split.Feedback,
		Todo:         split.Todo,
		Score:        split.Score,
		CreatedAt:    time.Now(),
	}

	result := &SubmitResult{
		Feedback: split.Feedback,
		Todo:     split.Todo,
	}

	log.Println("💾 Saving feedback...")
	if err := s.feedbackRepo.Create(record); err != nil {
		// The critique is still returned to the user.
		log.Printf("❌ Failed to save feedback: %v\n", err)
		return result, nil
	}

	result.ID = &record.ID
	if s.queue != nil {
		s.queue.EnqueueJob(record.ID)
	}

	log.Printf("✅ Feedback %s completed\n", record.ID)
	return result, nil
}

// Get returns the feedback only to its owner.
func (s *feedbackService) Get(id uuid.UUID, userEmail string) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if feedback.UserEmail != userEmail {
		return nil, fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
	}
	return feedback, nil
}

func (s *feedbackService) History(userEmail string) ([]models.Feedback, error) {
	return s.feedbackRepo.FindByUserEmail(userEmail)
}

func (s *feedbackService) Todos(userEmail string) ([]models.Feedback, error) {
	return s.feedbackRepo.FindTodosByUserEmail(userEmail)
}

// Similar returns up to limit of the user's other feedbacks closest to id,
// best match first. It is empty when indexing is disabled.
func (s *feedbackService) Similar(ctx context.Context, id uuid.UUID, userEmail string, limit int) ([]models.Feedback, error) {
	feedback, err := s.Get(id, userEmail)
	if err != nil {
		return nil, err
	}

	if !s.index.Enabled() {
		return []models.Feedback{}, nil
	}

	embedding, err := s.geminiService.GenerateEmbedding(ctx, feedback.FullFeedback)
	if err != nil {
		return nil, fmt.Errorf("failed to embed feedback: %w", err)
	}

	ids, err := s.index.SearchSimilar(ctx, embedding, userEmail, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar feedbacks: %w", err)
	}

	others := make([]uuid.UUID, 0, len(ids))
	for _, other := range ids {
		if other != id && len(others) < limit {
			others = append(others, other)
		}
	}

	found, err := s.feedbackRepo.FindByIDs(others)
	if err != nil {
		return nil, err
	}

	// FindByIDs does not keep the ranking
	byID := make(map[uuid.UUID]models.Feedback, len(found))
	for _, fb := range found {
		byID[fb.ID] = fb
	}
	ranked := make([]models.Feedback, 0, len(found))
	for _, other := range others {
		if fb, ok := byID[other]; ok {
			ranked = append(ranked, fb)
		}
	}

	return ranked, nil
}

// Summarize cuts text to at most n characters and appends "...".
func Summarize(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes) + "..."
}

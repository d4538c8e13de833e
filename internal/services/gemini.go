package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// ErrEmptyResponse means the model answered but produced no usable text.
var ErrEmptyResponse = errors.New("no text content in model response")

type ChatMessage struct {
	Role    string
	Content string
}

type GeminiService interface {
	GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error)
	Chat(ctx context.Context, history []ChatMessage, message string) (string, error)
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	modelName  string
	embedModel string
	breaker    *ModelBreaker
}

func NewGeminiService(apiKey, modelName, embedModel string, breaker *ModelBreaker) (GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		modelName:  modelName,
		embedModel: embedModel,
		breaker:    breaker,
	}, nil
}

// GenerateText makes exactly one model call. Timeouts come from ctx.
func (g *geminiService) GenerateText(ctx context.Context, systemInstruction, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: 4096,
	}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	return g.generate(ctx, genai.Text(prompt), config)
}

// Chat continues a conversation. Roles "assistant" and "model" map to the
// model turn, "system" becomes the system instruction, anything else is a
// user turn.
func (g *geminiService) Chat(ctx context.Context, history []ChatMessage, message string) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: 2048,
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		switch msg.Role {
		case "system":
			config.SystemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case "assistant", "model":
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	return g.generate(ctx, contents, config)
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.breaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	})
	if err != nil {
		log.Printf("❌ Gemini API error: %v\n", err)
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", ErrEmptyResponse
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if runes := []rune(text); len(runes) > 10000 {
		text = string(runes[:10000])
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

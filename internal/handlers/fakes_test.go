package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
	"rezoom/feedback-api/internal/services"
)

const testUser = "jiwoo@example.com"

type fakeFeedbackService struct {
	submitted    []services.SubmitInput
	uploadExists bool
	result       *services.SubmitResult
	err          error
	feedbacks    []models.Feedback
	similarLimit int
}

func (s *fakeFeedbackService) Submit(_ context.Context, in services.SubmitInput) (*services.SubmitResult, error) {
	s.submitted = append(s.submitted, in)
	_, statErr := os.Stat(in.FilePath)
	s.uploadExists = statErr == nil
	return s.result, s.err
}

func (s *fakeFeedbackService) Get(id uuid.UUID, userEmail string) (*models.Feedback, error) {
	for _, fb := range s.feedbacks {
		if fb.ID == id && fb.UserEmail == userEmail {
			return &fb, nil
		}
	}
	return nil, fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
}

func (s *fakeFeedbackService) History(userEmail string) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range s.feedbacks {
		if fb.UserEmail == userEmail {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (s *fakeFeedbackService) Todos(userEmail string) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, fb := range s.feedbacks {
		if fb.UserEmail == userEmail && fb.Todo != "" {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (s *fakeFeedbackService) Similar(_ context.Context, id uuid.UUID, userEmail string, limit int) ([]models.Feedback, error) {
	s.similarLimit = limit
	if _, err := s.Get(id, userEmail); err != nil {
		return nil, err
	}
	var out []models.Feedback
	for _, fb := range s.feedbacks {
		if fb.ID != id && fb.UserEmail == userEmail {
			out = append(out, fb)
		}
	}
	return out, nil
}

type fakeAuthService struct {
	passwords map[string]string
	users     map[string]models.User
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{
		passwords: make(map[string]string),
		users:     make(map[string]models.User),
	}
}

func (s *fakeAuthService) Signup(req *models.SignupRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, services.ErrMissingCredentials
	}
	if req.Password != req.Confirm {
		return nil, services.ErrPasswordMismatch
	}
	if _, ok := s.users[req.Email]; ok {
		return nil, services.ErrEmailTaken
	}
	user := models.User{ID: uuid.New(), Email: req.Email, Nickname: req.Nickname}
	s.users[req.Email] = user
	s.passwords[req.Email] = req.Password
	return &user, nil
}

func (s *fakeAuthService) Login(req *models.LoginRequest) (*models.User, error) {
	user, ok := s.users[req.Email]
	if !ok || s.passwords[req.Email] != req.Password {
		return nil, services.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *fakeAuthService) Profile(email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, repositories.ErrNotFound)
	}
	return &user, nil
}

func (s *fakeAuthService) UpdateProfile(email string, req *models.ProfileRequest) error {
	user, ok := s.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, repositories.ErrNotFound)
	}
	user.Name = req.Name
	user.University = req.University
	s.users[email] = user
	return nil
}

type fakeChatService struct {
	history []services.ChatMessage
	reply   string
	err     error
}

func (s *fakeChatService) Continue(_ context.Context, history []services.ChatMessage, _ string) (string, error) {
	s.history = history
	return s.reply, s.err
}

// withUser stands in for RequireAuth.
func withUser(email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(SessionUserKey, email)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp, decoded
}

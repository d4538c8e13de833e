package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rezoom/feedback-api/internal/models"
	"rezoom/feedback-api/internal/repositories"
)

type fakeFeedbackRepo struct {
	mu        sync.Mutex
	feedbacks map[uuid.UUID]models.Feedback
	createErr error
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{feedbacks: make(map[uuid.UUID]models.Feedback)}
}

func (r *fakeFeedbackRepo) Create(feedback *models.Feedback) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedbacks[feedback.ID] = *feedback
	return nil
}

func (r *fakeFeedbackRepo) FindByID(id uuid.UUID) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.feedbacks[id]
	if !ok {
		return nil, fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
	}
	return &fb, nil
}

func (r *fakeFeedbackRepo) FindByIDs(ids []uuid.UUID) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	// reverse order so callers cannot rely on it
	for i := len(ids) - 1; i >= 0; i-- {
		if fb, ok := r.feedbacks[ids[i]]; ok {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) filter(keep func(models.Feedback) bool) []models.Feedback {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, fb := range r.feedbacks {
		if keep(fb) {
			out = append(out, fb)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeFeedbackRepo) FindByUserEmail(email string) ([]models.Feedback, error) {
	return r.filter(func(fb models.Feedback) bool { return fb.UserEmail == email }), nil
}

func (r *fakeFeedbackRepo) FindTodosByUserEmail(email string) ([]models.Feedback, error) {
	return r.filter(func(fb models.Feedback) bool { return fb.UserEmail == email && fb.Todo != "" }), nil
}

func (r *fakeFeedbackRepo) FindUnindexed(limit int) ([]models.Feedback, error) {
	out := r.filter(func(fb models.Feedback) bool { return !fb.Indexed })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFeedbackRepo) FindAllIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, fb := range r.filter(func(models.Feedback) bool { return true }) {
		ids = append(ids, fb.ID)
	}
	return ids, nil
}

func (r *fakeFeedbackRepo) MarkIndexed(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	fb, ok := r.feedbacks[id]
	if !ok {
		return fmt.Errorf("feedback %s: %w", id, repositories.ErrNotFound)
	}
	fb.Indexed = true
	r.feedbacks[id] = fb
	return nil
}

type fakeGemini struct {
	mu        sync.Mutex
	reply     string
	err       error
	embedErr  error
	prompts   []string
	histories [][]ChatMessage
}

func (g *fakeGemini) GenerateText(_ context.Context, _ string, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGemini) Chat(_ context.Context, history []ChatMessage, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.histories = append(g.histories, history)
	return g.reply, g.err
}

func (g *fakeGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if g.embedErr != nil {
		return nil, g.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

type fakeParser struct {
	text string
	err  error
}

func (p fakeParser) ExtractText(filePath string) (*PDFContent, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &PDFContent{Text: p.text, PageCount: 1, FilePath: filePath}, nil
}

type fakeIndex struct {
	mu       sync.Mutex
	upserted []uuid.UUID
	results  []uuid.UUID
}

func (ix *fakeIndex) Enabled() bool { return true }

func (ix *fakeIndex) InitCollection(context.Context) error { return nil }

func (ix *fakeIndex) Upsert(_ context.Context, feedback *models.Feedback, _ []float32) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.upserted = append(ix.upserted, feedback.ID)
	return nil
}

func (ix *fakeIndex) SearchSimilar(_ context.Context, _ []float32, _ string, limit int) ([]uuid.UUID, error) {
	if len(ix.results) > limit {
		return ix.results[:limit], nil
	}
	return ix.results, nil
}

type fakeQueue struct {
	jobs []uuid.UUID
}

func (q *fakeQueue) EnqueueJob(id uuid.UUID) {
	q.jobs = append(q.jobs, id)
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, repositories.ErrNotFound)
	}
	return &user, nil
}

func (r *fakeUserRepo) UpdateProfile(email string, profile *models.ProfileRequest) error {
	user, ok := r.users[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, repositories.ErrNotFound)
	}
	user.Name = profile.Name
	user.Age = profile.Age
	user.University = profile.University
	user.GPA = profile.GPA
	user.Nickname = profile.Nickname
	r.users[email] = user
	return nil
}

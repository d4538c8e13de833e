package models

import "time"

type SignupRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
	Nickname string `json:"nickname" form:"nickname"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type ProfileRequest struct {
	Name       string `json:"name" form:"name"`
	Age        string `json:"age" form:"age"`
	University string `json:"university" form:"university"`
	GPA        string `json:"gpa" form:"gpa"`
	Nickname   string `json:"nickname" form:"nickname"`
}

type ProfileResponse struct {
	Email           string           `json:"email"`
	Profile         ProfileRequest   `json:"profile"`
	FeedbackHistory []FeedbackDetail `json:"feedback_history"`
}

// SubmitFeedbackResponse never carries the score; it is internal only.
type SubmitFeedbackResponse struct {
	ID       string `json:"id,omitempty"`
	Feedback string `json:"feedback"`
	Todo     string `json:"todo"`
}

type FeedbackDetail struct {
	ID           string `json:"id"`
	Company      string `json:"company"`
	Position     string `json:"position"`
	Filename     string `json:"filename"`
	Summary      string `json:"summary"`
	FullFeedback string `json:"full_feedback"`
	Todo         string `json:"todo"`
	CreatedAt    string `json:"created_at"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func NewFeedbackDetail(fb Feedback) FeedbackDetail {
	return FeedbackDetail{
		ID:           fb.ID.String(),
		Company:      fb.Company,
		Position:     fb.Position,
		Filename:     fb.Filename,
		Summary:      fb.Summary,
		FullFeedback: fb.FullFeedback,
		Todo:         fb.Todo,
		CreatedAt:    fb.CreatedAt.Format(time.RFC3339),
	}
}

func NewFeedbackDetails(feedbacks []Feedback) []FeedbackDetail {
	details := make([]FeedbackDetail, 0, len(feedbacks))
	for _, fb := range feedbacks {
		details = append(details, NewFeedbackDetail(fb))
	}
	return details
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFeedbackPrompt(t *testing.T) {
	pb := NewPromptBuilder(DefaultWordLimit, true)

	prompt := pb.BuildFeedbackPrompt("네이버", "백엔드 개발자", "저는 성실한 개발자입니다.")

	assert.Contains(t, prompt, "기업명: 네이버, 모집 직무: 백엔드 개발자")
	assert.Contains(t, prompt, "[자기소개서]\n저는 성실한 개발자입니다.")
	assert.Contains(t, prompt, "1️⃣ 불합격 사유 (피드백)")
	assert.Contains(t, prompt, "2️⃣ 개선을 위한 To-do 리스트")
	assert.Contains(t, prompt, "[시스템 내부용")
	assert.Contains(t, prompt, `"Score: X/10"`)
	assert.Less(t, strings.Index(prompt, "불합격 사유 (피드백)"), strings.Index(prompt, "개선을 위한 To-do 리스트"))
}

func TestBuildFeedbackPromptWithoutScore(t *testing.T) {
	pb := NewPromptBuilder(DefaultWordLimit, false)

	prompt := pb.BuildFeedbackPrompt("카카오", "PM", "내용")

	assert.NotContains(t, prompt, "[시스템 내부용")
	assert.NotContains(t, prompt, "Score:")
}

func TestBuildFeedbackPromptEmptyDocument(t *testing.T) {
	pb := NewPromptBuilder(0, true)

	prompt := pb.BuildFeedbackPrompt("", "", "")

	assert.Contains(t, prompt, "[자기소개서]\n\n\n---")
	assert.Equal(t, DefaultWordLimit, pb.wordLimit)
}

func TestBuildFeedbackPromptTruncatesDocument(t *testing.T) {
	pb := NewPromptBuilder(DefaultWordLimit, true)
	document := strings.Repeat("단어 ", 3500)

	prompt := pb.BuildFeedbackPrompt("A", "B", document)

	start := strings.Index(prompt, "[자기소개서]\n") + len("[자기소개서]\n")
	end := strings.Index(prompt, "\n\n---")
	assert.Len(t, strings.Fields(prompt[start:end]), DefaultWordLimit)
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		limit    int
		expected string
	}{
		{name: "under limit", text: "a b c", limit: 5, expected: "a b c"},
		{name: "exact limit", text: "a b c", limit: 3, expected: "a b c"},
		{name: "prefix cut", text: "a b c d", limit: 2, expected: "a b"},
		{name: "newlines count as separators", text: "a\nb\nc", limit: 2, expected: "a\nb"},
		{name: "leading whitespace kept", text: "  a b", limit: 1, expected: "  a"},
		{name: "repeated spaces", text: "a   b   c", limit: 2, expected: "a   b"},
		{name: "zero limit", text: "a b", limit: 0, expected: ""},
		{name: "empty text", text: "", limit: 3, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateWords(tt.text, tt.limit))
		})
	}
}

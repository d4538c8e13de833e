package services

import (
	"fmt"
	"strings"
	"unicode"
)

// FeedbackSystemInstruction is sent as the system turn of every feedback request.
const FeedbackSystemInstruction = "너는 자소서를 분석해서 불합격 사유와 개선점을 알려주는 조교야."

const DefaultWordLimit = 3000

const feedbackInstructions = `당신은 채용 평가자 역할을 맡은 인공지능 조교입니다. 아래 기준에 맞춰 분석 결과를 **두 개의 명확한 섹션**으로 작성해 주세요.

1️⃣ 불합격 사유 (피드백)
- 이 자기소개서에서 불합격할 가능성이 높은 구체적인 이유들을 항목별로 설명해 주세요.
- 내용, 표현, 구조, 직무 적합성 등 채용 평가 기준에 기반하여 비판적으로 지적해 주세요.
- 각 항목은 번호 또는 제목으로 구분해 주세요.
(예: "1. 구조", "2. 표현력", "3. 직무 연관성")

2️⃣ 개선을 위한 To-do 리스트
- 사용자가 다음 자기소개서를 더 경쟁력 있게 만들기 위해 실천해야 할 행동을 To-do 리스트 형식으로 제시해 주세요.
- **모호한 조언이 아니라**, 다음 항목들을 포함해 최대한 구체적이고 실행 가능한 내용으로 구성해 주세요:
  - 추천 자격증 (예: SQLD, 컴활 1급)
  - 부족한 경험을 채우기 위한 구체적인 활동/프로젝트 아이디어
  - 직무 관련 경험 강화 방안
  - 사용 가능한 툴, 포트폴리오 작성 방식, 표현 개선 방법 등
- 각 항목은 번호로 구분해 주세요.
- 필요하다면 예시를 들어 주세요.`

const hiddenScoreInstructions = `[시스템 내부용 - 사용자에게 보이지 않음]
이 자기소개서를 10점 만점으로 평가하고, 반드시 "Score: X/10" 형식으로만 작성해 주세요.
이 섹션은 사용자에게 보이지 않아야 하며, 시스템 내부 평가용입니다.`

type PromptBuilder struct {
	wordLimit    int
	scoreEnabled bool
}

func NewPromptBuilder(wordLimit int, scoreEnabled bool) *PromptBuilder {
	if wordLimit <= 0 {
		wordLimit = DefaultWordLimit
	}
	return &PromptBuilder{
		wordLimit:    wordLimit,
		scoreEnabled: scoreEnabled,
	}
}

// BuildFeedbackPrompt creates the critique prompt for one self-introduction.
// An empty document still yields a usable prompt.
func (pb *PromptBuilder) BuildFeedbackPrompt(company, position, documentText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[지원 기업 및 직무]\n기업명: %s, 모집 직무: %s\n\n", company, position)
	fmt.Fprintf(&b, "[자기소개서]\n%s\n\n---\n\n", TruncateWords(documentText, pb.wordLimit))
	b.WriteString(feedbackInstructions)

	if pb.scoreEnabled {
		b.WriteString("\n\n")
		b.WriteString(hiddenScoreInstructions)
	}

	b.WriteString("\n")
	return b.String()
}

// TruncateWords keeps the prefix of text holding at most limit
// whitespace-delimited words. Line breaks inside the prefix are preserved.
func TruncateWords(text string, limit int) string {
	if limit <= 0 {
		return ""
	}

	count := 0
	inWord := false
	for i, r := range text {
		if !unicode.IsSpace(r) {
			inWord = true
			continue
		}
		if inWord {
			count++
			inWord = false
			if count == limit {
				return text[:i]
			}
		}
	}

	return text
}

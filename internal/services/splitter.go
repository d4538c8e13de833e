package services

import (
	"log"
	"regexp"
	"strconv"
	"strings"
)

// Values stored in place of a section that could not be produced.
const (
	FeedbackFailedSentinel = "⚠️ 불합격 사유 분석 실패"
	TodoFailedSentinel     = "⚠️ To-do 리스트 생성 실패"
	ReplyErrorPlaceholder  = "⚠️ 응답 오류"

	TodoHeading = "To-do list"

	HeaderNone = "none"
)

const (
	keycapTwo = "2\uFE0F\u20E3"
	todoLabel = "개선을 위한 To-do 리스트"
)

var (
	scorePattern       = regexp.MustCompile(`(?i)Score:\s*(\d+)\s*/\s*10\b`)
	internalTagPattern = regexp.MustCompile(`(?i)\[(?:시스템 내부용|system[ -]internal)[^\]]*\]`)

	todoHeaderPrefix     = regexp.MustCompile(`(?i)^(?:\d+(?:\x{FE0F}?\x{20E3}|\.)\s*)?(?:개선을 위한\s*)?to-?do\s*(?:리스트|list)[:：]?\s*`)
	feedbackHeaderPrefix = regexp.MustCompile(`(?i)^(?:1(?:\x{FE0F}?\x{20E3}|\.)\s*)?불합격 사유\s*\(피드백\)[:：]?\s*`)
)

type SplitResult struct {
	Feedback string
	Todo     string
	Score    *int
	// Header names the matcher that located the to-do section, or HeaderNone.
	Header string
}

type ReplySplitter interface {
	Split(raw string) SplitResult
}

// Span is a matched header: Offset bytes into the text, Length bytes long.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

type HeaderMatcher interface {
	Name() string
	Match(text string) (Span, bool)
}

type literalHeader struct {
	name string
	text string
}

func (h literalHeader) Name() string {
	return h.name
}

func (h literalHeader) Match(text string) (Span, bool) {
	i := strings.Index(text, h.text)
	if i < 0 {
		return Span{}, false
	}
	return Span{Offset: i, Length: len(h.text)}, true
}

// DefaultTodoHeaders lists the to-do header forms in priority order.
func DefaultTodoHeaders() []HeaderMatcher {
	return []HeaderMatcher{
		literalHeader{name: "decorated", text: "**" + keycapTwo + " " + todoLabel + "**"},
		literalHeader{name: "numbered", text: "2. " + todoLabel},
		literalHeader{name: "emoji", text: keycapTwo + " " + todoLabel},
		literalHeader{name: "label", text: todoLabel},
		literalHeader{name: "bare", text: "To-do 리스트"},
	}
}

type sectionSplitter struct {
	scoreEnabled bool
	matchers     []HeaderMatcher
}

// NewReplySplitter returns the splitter for mode. "legacy" selects the
// deprecated single-pattern splitter; anything else the header-priority one.
func NewReplySplitter(mode string, scoreEnabled bool) ReplySplitter {
	if mode == "legacy" {
		log.Println("⚠️  SPLITTER=legacy is deprecated: scores are not extracted and only one header form is recognised")
		return legacySplitter{}
	}
	return NewSectionSplitter(scoreEnabled, DefaultTodoHeaders())
}

func NewSectionSplitter(scoreEnabled bool, matchers []HeaderMatcher) ReplySplitter {
	return &sectionSplitter{
		scoreEnabled: scoreEnabled,
		matchers:     matchers,
	}
}

// Split never fails. Anything it cannot recover is reported through the
// sentinel constants and a nil Score.
func (s *sectionSplitter) Split(raw string) SplitResult {
	working := raw

	var score *int
	if s.scoreEnabled {
		score, working = ExtractScore(working)
	}

	if strings.TrimSpace(working) == "" {
		return SplitResult{
			Feedback: FeedbackFailedSentinel,
			Todo:     TodoFailedSentinel,
			Score:    score,
			Header:   HeaderNone,
		}
	}

	span, header, ok := LocateTodoHeader(working, s.matchers)
	if !ok {
		return SplitResult{
			Feedback: finishFeedback(working),
			Todo:     TodoFailedSentinel,
			Score:    score,
			Header:   HeaderNone,
		}
	}

	return SplitResult{
		Feedback: finishFeedback(working[:span.Offset]),
		Todo:     finishTodo(working[span.End():]),
		Score:    score,
		Header:   header,
	}
}

// LocateTodoHeader tries matchers in order; the first that matches wins even
// if a lower-priority header appears earlier in the text.
func LocateTodoHeader(text string, matchers []HeaderMatcher) (Span, string, bool) {
	for _, m := range matchers {
		if span, ok := m.Match(text); ok {
			return span, m.Name(), true
		}
	}
	return Span{}, HeaderNone, false
}

// ExtractScore reads the hidden "Score: X/10" marker. When a marker is found
// the internal-only tag and every score marker are removed from the returned
// text. Scores outside 0..10 are discarded.
func ExtractScore(text string) (*int, string) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, text
	}

	var score *int
	if n, err := strconv.Atoi(m[1]); err == nil && n >= 0 && n <= 10 {
		score = &n
	}

	text = internalTagPattern.ReplaceAllString(text, "")
	text = scorePattern.ReplaceAllString(text, "")

	return score, strings.TrimSpace(text)
}

func finishFeedback(section string) string {
	feedback := strings.TrimSpace(CleanContent(section))
	if feedback == "" {
		return FeedbackFailedSentinel
	}
	return feedback
}

func finishTodo(section string) string {
	todo := strings.TrimSpace(CleanContent(section))
	todo = todoHeaderPrefix.ReplaceAllString(todo, "")
	todo = feedbackHeaderPrefix.ReplaceAllString(todo, "")
	todo = strings.TrimSpace(todo)

	if todo == "" {
		return TodoHeading
	}
	return TodoHeading + "\n" + todo
}

var legacyTodoHeader = regexp.MustCompile(`(?:\*\*)?(?:2(?:\x{FE0F}?\x{20E3}|\.)\s*)?개선을 위한 To-do 리스트(?:\*\*)?`)

// legacySplitter splits on a single header pattern and ignores scores.
//
// Deprecated: kept only for deployments that still set SPLITTER=legacy.
// Use the header-priority splitter from NewSectionSplitter.
type legacySplitter struct{}

func (legacySplitter) Split(raw string) SplitResult {
	loc := legacyTodoHeader.FindStringIndex(raw)
	if loc == nil {
		feedback := strings.TrimSpace(CleanContent(raw))
		if feedback == "" {
			feedback = FeedbackFailedSentinel
		}
		return SplitResult{Feedback: feedback, Todo: TodoFailedSentinel, Header: HeaderNone}
	}

	return SplitResult{
		Feedback: finishFeedback(raw[:loc[0]]),
		Todo:     finishTodo(raw[loc[1]:]),
		Header:   "legacy",
	}
}

package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanContent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bold", input: "**굵게** 강조", expected: "굵게 강조"},
		{name: "keycap emoji", input: "1️⃣ 불합격 사유", expected: "불합격 사유"},
		{name: "keycap without variation selector", input: "2⃣ 개선", expected: "개선"},
		{name: "keycap ten", input: "🔟 열 번째", expected: "열 번째"},
		{name: "heading", input: "### 제목", expected: "제목"},
		{name: "numbered heading keeps its number", input: "### 1. 구조", expected: "1. 구조"},
		{name: "dash bullet", input: "  - 항목  ", expected: "항목"},
		{name: "star bullet", input: "* 항목", expected: "항목"},
		{name: "nested bullets", input: "- - 항목", expected: "항목"},
		{name: "horizontal rule", input: "---", expected: ""},
		{name: "bold bullet", input: "- **SQLD** 취득", expected: "SQLD 취득"},
		{name: "blank lines survive", input: "첫 문단\n\n둘째 문단", expected: "첫 문단\n\n둘째 문단"},
		{name: "plain text only trimmed", input: "  평범한 문장입니다.  ", expected: "평범한 문장입니다."},
		{name: "inner punctuation untouched", input: "C# 과 A-B 테스트", expected: "C# 과 A-B 테스트"},
		{name: "warning emoji untouched", input: "⚠️ 응답 오류", expected: "⚠️ 응답 오류"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanContent(tt.input))
		})
	}
}

func TestCleanContentIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"*1️⃣*",
		"x*1️⃣*y",
		"***x***",
		"- 　- x",
		"  ## 제목 ",
		"1**️⃣x",
		"**1️⃣ 불합격 사유 (피드백)**\n\n### 1. 구조\n- 산만함\n\n**2️⃣ 개선을 위한 To-do 리스트**\n* SQLD",
	}

	for _, input := range inputs {
		once := CleanContent(input)
		assert.Equal(t, once, CleanContent(once), "input %q", input)
	}
}

func TestCleanContentRemovesAllDecorations(t *testing.T) {
	out := CleanContent("**a** 1️⃣ **b** 2️⃣\n**3️⃣ c**\n🔟**")

	assert.NotContains(t, out, "**")
	assert.False(t, keycapEmojiPattern.MatchString(out))
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
}

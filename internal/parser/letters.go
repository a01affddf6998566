package parser

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// LetterModeLimitation 本地模式无法处理时直接展示给用户的说明
	LetterModeLimitation = "无法自动处理复杂格式。本地模式仅支持连续字母输入（如：ABCD...）。\n\n如果需要复杂处理，请检查输入格式。"

	// ProcessingFailed 解析过程中出现意外错误时的返回文本
	ProcessingFailed = "处理失败"

	LetterScore = 2
)

var lettersRe = regexp.MustCompile(`^[A-Za-z]+$`)

// EncodeLetterAnswers 将连续的选择题答案字母转为判分 YAML，每题 2 分。
// format 目前未使用。输入含非字母字符时返回 LetterModeLimitation 且 ok 为 false。
func EncodeLetterAnswers(answers, format string) (result string, ok bool) {
	clean := strings.Join(strings.Fields(answers), "")
	if !lettersRe.MatchString(clean) {
		return LetterModeLimitation, false
	}

	var b strings.Builder
	b.WriteString(scoringHeader)
	for i, ch := range strings.ToUpper(clean) {
		fmt.Fprintf(&b, "  '%d':\n  - %c\n  - %d\n", i+1, ch, LetterScore)
	}
	return b.String(), true
}

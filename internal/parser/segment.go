package parser

import (
	"regexp"
	"strings"
)

// QuestionBlock 一道小题的原始文本，ID 为括号中的题号
type QuestionBlock struct {
	ID      string `json:"id"`
	RawText string `json:"rawText"`
}

var (
	// 可选的大题号 + (小题号) + 余下文本，例如 "13(1) ① range(1,3)"。
	// 空白包含全角空格 U+3000 与不换行空格 U+00A0
	blockStartRe = regexp.MustCompile(`^(?:\d+)?[\s\p{Zs}]*\((\d+)\)(.*)$`)

	punctuationReplacer = strings.NewReplacer(
		"（", "(",
		"）", ")",
		"：", ":",
	)
)

// NormalizePunctuation 全角括号、冒号转半角
func NormalizePunctuation(text string) string {
	return punctuationReplacer.Replace(text)
}

// Segment 将答案文本切分为有序的小题块。
// 不以 (n) 开头的行并入当前块；首个块出现之前的行被丢弃。
func Segment(raw string) []QuestionBlock {
	normalized := NormalizePunctuation(raw)

	var (
		blocks []QuestionBlock
		cur    *QuestionBlock
	)
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := blockStartRe.FindStringSubmatch(line); m != nil {
			if cur != nil {
				blocks = append(blocks, *cur)
			}
			cur = &QuestionBlock{ID: m[1], RawText: m[2]}
			continue
		}

		if cur != nil {
			cur.RawText += " " + line
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}

	return blocks
}

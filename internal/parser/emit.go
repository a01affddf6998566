package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const scoringHeader = "type: objective\nanswers:\n"

// DualTemplates 双模版生成结果
type DualTemplates struct {
	Template1 string `json:"template1"`
	Template2 string `json:"template2"`
	Blocks    int    `json:"blocks"`
	Graded    int    `json:"graded"`
	Skipped   int    `json:"skipped"`
}

// GenerateDualTemplates 一次解析同时生成填空模版与判分 YAML
func GenerateDualTemplates(content string) DualTemplates {
	blocks := Segment(content)

	acc := NewAccumulator()
	lines := make([]string, 0, len(blocks))
	out := DualTemplates{Blocks: len(blocks)}

	for _, block := range blocks {
		res := InterpretBlock(block, acc.NextIndex)
		acc = acc.Apply(res)
		lines = append(lines, res.Line)

		for _, p := range res.Parts {
			if p.Skipped {
				out.Skipped++
			} else {
				out.Graded++
			}
		}
	}

	out.Template1, out.Template2 = Emit(lines, acc.Scoring)
	return out
}

// Emit 渲染模版一（空行分隔）与模版二（判分 YAML）
func Emit(lines []string, scoring *ScoringMap) (template1, template2 string) {
	template1 = strings.Join(lines, "\n\n")

	var b strings.Builder
	b.WriteString(scoringHeader)
	for _, key := range scoring.Keys() {
		set, _ := scoring.Get(key)
		fmt.Fprintf(&b, "  %s:\n", quote(key))
		for _, answer := range set.Keys() {
			score, _ := set.Get(answer)
			fmt.Fprintf(&b, "     %s: %d\n", quote(answer), score)
		}
	}

	return template1, b.String()
}

// 单引号标量，内部的单引号按 YAML 规则写成两个
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// ScoringDocument 判分 YAML 的解析结构，answers 的值可能是映射或 [字母, 分值] 序列
type ScoringDocument struct {
	Type    string         `yaml:"type"`
	Answers map[string]any `yaml:"answers"`
}

var ErrNotObjective = errors.New("scoring document type is not objective")

// ValidateScoringYAML 校验生成的判分文档可被 YAML 解析，且键均为正整数序号
func ValidateScoringYAML(doc string) (*ScoringDocument, error) {
	var out ScoringDocument
	if err := yaml.Unmarshal([]byte(doc), &out); err != nil {
		return nil, fmt.Errorf("parse scoring yaml: %w", err)
	}
	if out.Type != "objective" {
		return nil, ErrNotObjective
	}
	for key := range out.Answers {
		if n, err := strconv.Atoi(key); err != nil || n < 1 {
			return nil, fmt.Errorf("invalid answer index %q", key)
		}
	}
	return &out, nil
}

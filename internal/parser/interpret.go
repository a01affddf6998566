package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// SkipThreshold 汉字数达到该值的小问视为主观题，不参与判分
	SkipThreshold = 10

	DefaultMarkedScore   = 2
	DefaultUnmarkedScore = 1
	PartialLetterScore   = 1

	skipMarker = "不做"
)

var (
	circledRe = regexp.MustCompile(`[①-⑳]`)
	scoreRe   = regexp.MustCompile(`\((\d+)[\s\p{Zs}]*分\)`)
	upperRe   = regexp.MustCompile(`^[A-Z]+$`)
)

// SubPart 小问：圈号 + 其后的文本。无圈号的块只有一个 Marker 为空的小问。
type SubPart struct {
	Marker string
	Body   string
}

// AnswerShape 答案形态，按 Alternatives > MultiSelectCombination > SingleAnswer 的优先级判定
type AnswerShape int

const (
	SingleAnswer AnswerShape = iota
	Alternatives
	MultiSelectCombination
)

func (s AnswerShape) String() string {
	switch s {
	case Alternatives:
		return "alternatives"
	case MultiSelectCombination:
		return "multi_select"
	default:
		return "single"
	}
}

// SubPartResult 单个小问的解析结果
type SubPartResult struct {
	Marker  string      `json:"marker"`
	Skipped bool        `json:"skipped"`
	Index   int         `json:"index,omitempty"`
	Score   int         `json:"score,omitempty"`
	Shape   AnswerShape `json:"-"`
	Answers *AnswerSet  `json:"-"`
}

// BlockResult 单个题块的渲染行及其判分小问
type BlockResult struct {
	ID        string
	Line      string
	Parts     []SubPartResult
	NextIndex int
}

// Accumulator 在题块之间传递的全局序号与判分表
type Accumulator struct {
	NextIndex int
	Scoring   *ScoringMap
}

func NewAccumulator() Accumulator {
	return Accumulator{NextIndex: 1, Scoring: NewScoringMap()}
}

// Apply 将题块结果并入判分表，返回推进后的累加器
func (a Accumulator) Apply(res BlockResult) Accumulator {
	for _, p := range res.Parts {
		if p.Skipped || p.Answers == nil || p.Answers.Len() == 0 {
			continue
		}
		a.Scoring.Put(p.Index, p.Answers)
	}
	a.NextIndex = res.NextIndex
	return a
}

// SplitSubParts 按圈号切分；marked 表示是否存在圈号。
// 第一个圈号之前的文本不属于任何小问。
func SplitSubParts(text string) (parts []SubPart, marked bool) {
	locs := circledRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []SubPart{{Body: text}}, false
	}

	parts = make([]SubPart, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		parts = append(parts, SubPart{
			Marker: text[loc[0]:loc[1]],
			Body:   text[loc[1]:end],
		})
	}
	return parts, true
}

// CountHan 统计 U+4E00..U+9FA5 范围内的汉字
func CountHan(text string) int {
	n := 0
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FA5 {
			n++
		}
	}
	return n
}

// ExtractScore 取第一个 "(n 分)" 标注作为分值，并从文本中移除该标注。
// 分值超出 int 范围时使用 def，标注仍然移除。
func ExtractScore(body string, def int) (score int, cleaned string) {
	loc := scoreRe.FindStringSubmatchIndex(body)
	if loc == nil {
		return def, strings.TrimSpace(body)
	}

	score, err := strconv.Atoi(body[loc[2]:loc[3]])
	if err != nil {
		score = def
	}
	return score, strings.TrimSpace(body[:loc[0]] + body[loc[1]:])
}

// ClassifyAnswer 判定清洗后答案的形态
func ClassifyAnswer(cleaned string) AnswerShape {
	if strings.Contains(cleaned, "或") {
		return Alternatives
	}
	if n := len(cleaned); n > 1 && n < 5 && upperRe.MatchString(cleaned) {
		return MultiSelectCombination
	}
	return SingleAnswer
}

// BuildAnswerSet 根据形态构造答案集合
func BuildAnswerSet(shape AnswerShape, cleaned string, score int) *AnswerSet {
	set := NewAnswerSet()

	switch shape {
	case Alternatives:
		for _, opt := range strings.Split(cleaned, "或") {
			if opt = strings.TrimSpace(opt); opt != "" {
				set.Set(opt, score)
			}
		}
	case MultiSelectCombination:
		set.Set(cleaned, score)
		for _, ch := range cleaned {
			set.Set(string(ch), PartialLetterScore)
		}
	default:
		if cleaned != "" {
			set.Set(cleaned, score)
		}
	}

	return set
}

// InterpretBlock 解析一个题块，start 为本块第一个判分小问的全局序号
func InterpretBlock(block QuestionBlock, start int) BlockResult {
	parts, marked := SplitSubParts(block.RawText)

	def := DefaultUnmarkedScore
	if marked {
		def = DefaultMarkedScore
	}

	res := BlockResult{ID: block.ID, NextIndex: start}

	var line strings.Builder
	fmt.Fprintf(&line, "(%s)", block.ID)

	for _, part := range parts {
		if CountHan(part.Body) >= SkipThreshold {
			line.WriteString(part.Marker + skipMarker)
			res.Parts = append(res.Parts, SubPartResult{Marker: part.Marker, Skipped: true})
			continue
		}

		idx := res.NextIndex
		fmt.Fprintf(&line, "%s{{ input(%d) }}", part.Marker, idx)

		score, cleaned := ExtractScore(part.Body, def)
		shape := ClassifyAnswer(cleaned)
		res.Parts = append(res.Parts, SubPartResult{
			Marker:  part.Marker,
			Index:   idx,
			Score:   score,
			Shape:   shape,
			Answers: BuildAnswerSet(shape, cleaned, score),
		})
		res.NextIndex++
	}

	res.Line = line.String()
	return res
}

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersOf(t *testing.T, set *AnswerSet) map[string]int {
	t.Helper()
	require.NotNil(t, set)
	out := make(map[string]int, set.Len())
	for _, k := range set.Keys() {
		v, _ := set.Get(k)
		out[k] = v
	}
	return out
}

func TestSplitSubParts(t *testing.T) {
	parts, marked := SplitSubParts("前缀 ① a ② b ⑳ c")
	assert.True(t, marked)
	assert.Equal(t, []SubPart{
		{Marker: "①", Body: " a "},
		{Marker: "②", Body: " b "},
		{Marker: "⑳", Body: " c"},
	}, parts)

	parts, marked = SplitSubParts(" C (1 分)")
	assert.False(t, marked)
	assert.Equal(t, []SubPart{{Body: " C (1 分)"}}, parts)
}

func TestCountHan(t *testing.T) {
	assert.Equal(t, 0, CountHan("range(1,3)"))
	assert.Equal(t, 2, CountHan("A或B (2 分)"))
	assert.Equal(t, 4, CountHan("答案：不做"))
}

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		def         int
		wantScore   int
		wantCleaned string
	}{
		{name: "annotation with space", body: " st=c[v-1] (2 分) ", def: 1, wantScore: 2, wantCleaned: "st=c[v-1]"},
		{name: "annotation without space", body: "C(3分)", def: 1, wantScore: 3, wantCleaned: "C"},
		{name: "missing annotation uses default", body: " ABC ", def: 2, wantScore: 2, wantCleaned: "ABC"},
		{name: "ideographic space before 分", body: "C (3\u3000分)", def: 1, wantScore: 3, wantCleaned: "C"},
		{name: "no-break space before 分", body: "C (3\u00a0分)", def: 1, wantScore: 3, wantCleaned: "C"},
		{name: "score beyond int range falls back to default", body: "C (99999999999999999999 分)", def: 1, wantScore: 1, wantCleaned: "C"},
		{name: "only first annotation removed", body: "x (1 分) (2 分)", def: 2, wantScore: 1, wantCleaned: "x  (2 分)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, cleaned := ExtractScore(tt.body, tt.def)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantCleaned, cleaned)
		})
	}
}

func TestClassifyAnswer(t *testing.T) {
	tests := []struct {
		cleaned string
		want    AnswerShape
	}{
		{"range(1,3) 或 [1,2]", Alternatives},
		{"A或BC", Alternatives},
		{"AB", MultiSelectCombination},
		{"ABCD", MultiSelectCombination},
		{"A", SingleAnswer},
		{"ABCDE", SingleAnswer},
		{"ab", SingleAnswer},
		{"A B", SingleAnswer},
		{"", SingleAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.cleaned, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAnswer(tt.cleaned))
		})
	}
}

func TestBuildAnswerSet(t *testing.T) {
	t.Run("alternatives share the score", func(t *testing.T) {
		set := BuildAnswerSet(Alternatives, "x 或  或 y", 3)
		assert.Equal(t, []string{"x", "y"}, set.Keys())
		assert.Equal(t, map[string]int{"x": 3, "y": 3}, answersOf(t, set))
	})

	t.Run("multi select adds partial credit per letter", func(t *testing.T) {
		set := BuildAnswerSet(MultiSelectCombination, "ACD", 2)
		assert.Equal(t, []string{"ACD", "A", "C", "D"}, set.Keys())
		assert.Equal(t, map[string]int{"ACD": 2, "A": 1, "C": 1, "D": 1}, answersOf(t, set))
	})

	t.Run("repeated letter overwrites in place", func(t *testing.T) {
		set := BuildAnswerSet(MultiSelectCombination, "AA", 4)
		assert.Equal(t, []string{"AA", "A"}, set.Keys())
		assert.Equal(t, map[string]int{"AA": 4, "A": 1}, answersOf(t, set))
	})

	t.Run("empty single answer", func(t *testing.T) {
		assert.Equal(t, 0, BuildAnswerSet(SingleAnswer, "", 1).Len())
	})
}

func TestInterpretBlock_Marked(t *testing.T) {
	res := InterpretBlock(QuestionBlock{ID: "1", RawText: " ① range(1,3) (2 分) ② st=c[v-1] (2 分)"}, 1)

	assert.Equal(t, "(1)①{{ input(1) }}②{{ input(2) }}", res.Line)
	assert.Equal(t, 3, res.NextIndex)
	require.Len(t, res.Parts, 2)
	assert.Equal(t, map[string]int{"range(1,3)": 2}, answersOf(t, res.Parts[0].Answers))
	assert.Equal(t, map[string]int{"st=c[v-1]": 2}, answersOf(t, res.Parts[1].Answers))
}

func TestInterpretBlock_MarkedDefaultScore(t *testing.T) {
	res := InterpretBlock(QuestionBlock{ID: "5", RawText: "①BD②x"}, 7)

	assert.Equal(t, "(5)①{{ input(7) }}②{{ input(8) }}", res.Line)
	assert.Equal(t, DefaultMarkedScore, res.Parts[0].Score)
	assert.Equal(t, MultiSelectCombination, res.Parts[0].Shape)
	assert.Equal(t, map[string]int{"BD": 2, "B": 1, "D": 1}, answersOf(t, res.Parts[0].Answers))
	assert.Equal(t, map[string]int{"x": 2}, answersOf(t, res.Parts[1].Answers))
}

func TestInterpretBlock_Unmarked(t *testing.T) {
	res := InterpretBlock(QuestionBlock{ID: "2", RawText: "C"}, 4)

	assert.Equal(t, "(2){{ input(4) }}", res.Line)
	assert.Equal(t, 1, strings.Count(res.Line, "{{ input("))
	assert.Equal(t, 5, res.NextIndex)
	require.Len(t, res.Parts, 1)
	assert.Equal(t, DefaultUnmarkedScore, res.Parts[0].Score)
	assert.Equal(t, "", res.Parts[0].Marker)
}

func TestInterpretBlock_SkipDoesNotConsumeIndex(t *testing.T) {
	essay := " ① 因为列表中的元素会被依次访问所以输出结果为三 ② AB (3 分)"
	res := InterpretBlock(QuestionBlock{ID: "3", RawText: essay}, 2)

	assert.Equal(t, "(3)①不做②{{ input(2) }}", res.Line)
	assert.Equal(t, 3, res.NextIndex)
	require.Len(t, res.Parts, 2)
	assert.True(t, res.Parts[0].Skipped)
	assert.Nil(t, res.Parts[0].Answers)
	assert.Equal(t, map[string]int{"AB": 3, "A": 1, "B": 1}, answersOf(t, res.Parts[1].Answers))
}

func TestInterpretBlock_SkipThresholdBoundary(t *testing.T) {
	nine := strings.Repeat("答", SkipThreshold-1)
	ten := strings.Repeat("答", SkipThreshold)

	assert.Equal(t, "(1){{ input(1) }}", InterpretBlock(QuestionBlock{ID: "1", RawText: nine}, 1).Line)
	assert.Equal(t, "(1)不做", InterpretBlock(QuestionBlock{ID: "1", RawText: ten}, 1).Line)
}

func TestInterpretBlock_EmptyAnswerConsumesIndex(t *testing.T) {
	res := InterpretBlock(QuestionBlock{ID: "1", RawText: "① (2 分)② B"}, 1)

	assert.Equal(t, "(1)①{{ input(1) }}②{{ input(2) }}", res.Line)
	assert.Equal(t, 0, res.Parts[0].Answers.Len())

	acc := NewAccumulator().Apply(res)
	assert.Equal(t, 3, acc.NextIndex)
	assert.Equal(t, []string{"2"}, acc.Scoring.Keys())
}

func TestAccumulator_CarriesIndexAcrossBlocks(t *testing.T) {
	acc := NewAccumulator()
	for _, b := range []QuestionBlock{
		{ID: "1", RawText: "①A②B"},
		{ID: "2", RawText: "C"},
		{ID: "3", RawText: "①AB"},
	} {
		acc = acc.Apply(InterpretBlock(b, acc.NextIndex))
	}

	assert.Equal(t, 5, acc.NextIndex)
	assert.Equal(t, []string{"1", "2", "3", "4"}, acc.Scoring.Keys())
}

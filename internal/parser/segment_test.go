package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []QuestionBlock
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "no block markers",
			input: "答案如下\nABCD",
			want:  nil,
		},
		{
			name:  "outer number is ignored",
			input: "13(1) ① A\n(2)C",
			want: []QuestionBlock{
				{ID: "1", RawText: " ① A"},
				{ID: "2", RawText: "C"},
			},
		},
		{
			name:  "continuation lines are space joined",
			input: "(1) ① x\n② y\n\n   \n(2) z",
			want: []QuestionBlock{
				{ID: "1", RawText: " ① x ② y"},
				{ID: "2", RawText: " z"},
			},
		},
		{
			name:  "lines before the first block are dropped",
			input: "参考答案\n(3)B",
			want:  []QuestionBlock{{ID: "3", RawText: "B"}},
		},
		{
			name:  "score annotation line is not a block start",
			input: "(1) A\n(2 分)",
			want:  []QuestionBlock{{ID: "1", RawText: " A (2 分)"}},
		},
		{
			name:  "full width punctuation",
			input: "（4）答：C （1 分）",
			want:  []QuestionBlock{{ID: "4", RawText: "答:C (1 分)"}},
		},
		{
			name:  "ideographic space between outer and inner number",
			input: "13\u3000（1）① A",
			want:  []QuestionBlock{{ID: "1", RawText: "① A"}},
		},
		{
			name:  "no-break space between outer and inner number",
			input: "(1)A\n13\u00a0(2)B",
			want: []QuestionBlock{
				{ID: "1", RawText: "A"},
				{ID: "2", RawText: "B"},
			},
		},
		{
			name:  "windows line endings",
			input: "(1)A\r\n(2)B\r\n",
			want: []QuestionBlock{
				{ID: "1", RawText: "A"},
				{ID: "2", RawText: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Segment(tt.input))
		})
	}
}

func TestSegment_NormalizationIsIdempotent(t *testing.T) {
	halfWidth := NormalizePunctuation(ExampleAnswerKey)

	assert.NotContains(t, halfWidth, "（")
	assert.Equal(t, Segment(ExampleAnswerKey), Segment(halfWidth))
	assert.Equal(t, halfWidth, NormalizePunctuation(halfWidth))
}

package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLetterAnswers(t *testing.T) {
	out, ok := EncodeLetterAnswers("AbC d", "")

	require.True(t, ok)
	assert.Equal(t, "type: objective\nanswers:\n"+
		"  '1':\n  - A\n  - 2\n"+
		"  '2':\n  - B\n  - 2\n"+
		"  '3':\n  - C\n  - 2\n"+
		"  '4':\n  - D\n  - 2\n", out)
}

func TestEncodeLetterAnswers_EntryPerLetter(t *testing.T) {
	input := "ABCDDDDSSDDD"

	out, ok := EncodeLetterAnswers(input, "ignored format")
	require.True(t, ok)

	doc, err := ValidateScoringYAML(out)
	require.NoError(t, err)
	require.Len(t, doc.Answers, len(input))
	for i, ch := range input {
		key := fmt.Sprint(i + 1)
		assert.Equal(t, []any{string(ch), 2}, doc.Answers[key], key)
	}
}

func TestEncodeLetterAnswers_Limitation(t *testing.T) {
	for _, input := range []string{"", "   ", "AB1", "A,B", "选A", "ＡＢ"} {
		t.Run(input, func(t *testing.T) {
			out, ok := EncodeLetterAnswers(input, "")
			assert.False(t, ok)
			assert.Equal(t, LetterModeLimitation, out)
		})
	}
}

func TestEncodeLetterAnswers_StripsAllWhitespace(t *testing.T) {
	out, ok := EncodeLetterAnswers("a\tb\n　c", "")

	require.True(t, ok)
	assert.Equal(t, 3, strings.Count(out, "  - 2\n"))
}

package word_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dafset/dafset/engine/word"
)

func TestStyleCombine(t *testing.T) {
	cases := []struct {
		a, b word.Style
		want word.Style
	}{
		{word.Regular, word.Regular, word.Regular},
		{word.Regular, word.Italic, word.Italic},
		{word.Regular, word.Bold, word.Bold},
		{word.Italic, word.Bold, word.BoldItalic},
		{word.Bold, word.Italic, word.BoldItalic},
		{word.BoldItalic, word.Regular, word.BoldItalic},
		{word.BoldItalic, word.BoldItalic, word.BoldItalic},
		{word.Italic, word.Italic, word.Italic},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.a.Combine(c.b), "%s.Combine(%s)", c.a, c.b)
	}
}

func TestStreamBodyWords(t *testing.T) {
	s := word.Stream{
		{Text: "a", Position: word.Body},
		{Text: "b", Position: word.Margin},
		{Text: "c", Position: word.Body},
	}
	assert.Equal(t, 2, s.BodyWords(0, s.Len()))
}

func TestStreamSlice(t *testing.T) {
	s := word.Stream{{Text: "a"}, {Text: "b"}, {Text: "c"}}
	got := s.Slice(1, 3)
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
}

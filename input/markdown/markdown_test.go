package markdown_test

import (
	"testing"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/word"
	"github.com/dafset/dafset/input/markdown"
)

func wordsOf(stream word.Stream) []string {
	out := make([]string, len(stream))
	for i, w := range stream {
		out[i] = w.Text
	}
	return out
}

func TestParsePlainTextYieldsRegularBodyWords(t *testing.T) {
	stream, err := markdown.Parse("Hello world")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := wordsOf(stream); len(got) != 2 || got[0] != "Hello" || got[1] != "world" {
		t.Fatalf("words = %v, want [Hello world]", got)
	}
	for _, w := range stream {
		if w.Style != word.Regular || w.Position != word.Body {
			t.Errorf("word %+v should be Regular/Body", w)
		}
	}
}

func TestParseStrongAndEmphCombineToBoldItalic(t *testing.T) {
	stream, err := markdown.Parse("**bold** *italic* ***both***")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := map[string]word.Style{
		"bold":   word.Bold,
		"italic": word.Italic,
		"both":   word.BoldItalic,
	}
	if len(stream) != len(want) {
		t.Fatalf("got %d words, want %d: %+v", len(stream), len(want), stream)
	}
	for _, w := range stream {
		if want[w.Text] != w.Style {
			t.Errorf("word %q has style %v, want %v", w.Text, w.Style, want[w.Text])
		}
	}
}

// TestParseMarginSpanWithNestedEmphasis reproduces spec §8 S4's raw
// Markdown: a backtick span containing its own emphasis marker.
func TestParseMarginSpanWithNestedEmphasis(t *testing.T) {
	stream, err := markdown.Parse("A `footnote *here* and` *there*")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []struct {
		text  string
		style word.Style
		pos   word.Position
	}{
		{"A", word.Regular, word.Body},
		{"footnote", word.Regular, word.Margin},
		{"here", word.Italic, word.Margin},
		{"and", word.Regular, word.Margin},
		{"there", word.Italic, word.Body},
	}
	if len(stream) != len(want) {
		t.Fatalf("got %d words, want %d: %+v", len(stream), len(want), stream)
	}
	for i, w := range want {
		got := stream[i]
		if got.Text != w.text || got.Style != w.style || got.Position != w.pos {
			t.Errorf("word[%d] = %+v, want {%s %v %v}", i, got, w.text, w.style, w.pos)
		}
	}
}

func TestParseEmptySourceYieldsEmptyStream(t *testing.T) {
	stream, err := markdown.Parse("   ")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(stream) != 0 {
		t.Errorf("expected empty stream for blank source, got %+v", stream)
	}
}

func TestStreamsParsesAllThreeColumns(t *testing.T) {
	src := config.SourceText{
		Left:   "left text",
		Center: "**center**",
		Right:  "right `margin` text",
	}
	left, center, right, err := markdown.Streams(src)
	if err != nil {
		t.Fatalf("Streams returned error: %v", err)
	}
	if len(left) != 2 {
		t.Errorf("left stream = %+v, want 2 words", left)
	}
	if len(center) != 1 || center[0].Style != word.Bold {
		t.Errorf("center stream = %+v, want one Bold word", center)
	}
	if len(right) != 3 {
		t.Errorf("right stream = %+v, want 3 words", right)
	}
	var foundMargin bool
	for _, w := range right {
		if w.Position == word.Margin {
			foundMargin = true
		}
	}
	if !foundMargin {
		t.Error("right stream should contain a margin word")
	}
}

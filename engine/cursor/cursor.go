/*
Package cursor implements ColumnCursor (spec §2.2, §4.1): a monotonic
window over one column's word stream, able to serialize any slice of
itself either for the fast shaper oracle or for the authoritative
renderer oracle.

*/
package cursor

import (
	"regexp"
	"strings"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/style"
	"github.com/dafset/dafset/engine/word"
)

// ShapeSpan is a run of same-styled text handed to the shaper oracle.
// Margin words are never included — they render into side-notes and do
// not contribute to a column's body line count (spec §2.1, §4.1).
type ShapeSpan struct {
	Text  string
	Style word.Style
}

// Cursor wraps one word.Stream and an advancing start index (spec §3
// "ColumnCursor").
type Cursor struct {
	Stream word.Stream
	Start  int
	Font   config.FontConfig
}

// New creates a cursor positioned at the start of stream.
func New(stream word.Stream, font config.FontConfig) *Cursor {
	return &Cursor{Stream: stream, Font: font}
}

// Len returns the total number of words in the underlying stream.
func (c *Cursor) Len() int { return c.Stream.Len() }

// Done reports whether the cursor has no remaining words.
func (c *Cursor) Done() bool { return c.Start >= c.Stream.Len() }

// Remaining returns the number of words not yet committed.
func (c *Cursor) Remaining() int { return c.Stream.Len() - c.Start }

// ToShape produces shaper-ready spans for [Start, end). Body words only;
// adjacent words sharing a style are concatenated with single spaces; a
// style transition closes the current span and opens the next (spec
// §4.1 "to_shape").
func (c *Cursor) ToShape(end int) []ShapeSpan {
	var spans []ShapeSpan
	for _, w := range c.Stream.Slice(c.Start, end) {
		if w.Position == word.Margin {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].Style == w.Style {
			spans[n-1].Text += " " + w.Text
			continue
		}
		spans = append(spans, ShapeSpan{Text: w.Text, Style: w.Style})
	}
	return spans
}

// trailingCommand matches accumulated text ending in an unclosed
// command-opening brace, e.g. `...\textit{` (spec §4.1 spacing rule).
var trailingCommand = regexp.MustCompile(`\\[A-Za-z]+\{$`)

// sentenceTerminal holds the punctuation that suppresses a leading space
// (spec §4.1 spacing rule).
const sentenceTerminal = "!;:,."

// ToRender produces the renderer's command string for [Start, end),
// following the serialization contract in spec §4.1 exactly: font
// command, per-word style/position transitions with balanced
// open/close, the spacing rule, and final sanitization.
func (c *Cursor) ToRender(end int, includeMargin bool) string {
	var b strings.Builder
	b.WriteString(c.Font.Command)

	curStyle := word.Regular
	inMargin := false
	for _, w := range c.Stream.Slice(c.Start, end) {
		if w.Position == word.Margin && !includeMargin {
			continue
		}

		if w.Position == word.Margin && !inMargin {
			if needsSpace(b.String(), style.MarginOpen) {
				b.WriteString(" ")
			}
			b.WriteString(style.MarginOpen)
			inMargin = true
		} else if w.Position == word.Body && inMargin {
			suffix := style.Close(curStyle)
			b.WriteString(suffix)
			curStyle = word.Regular
			b.WriteString(style.MarginClose)
			inMargin = false
		}

		suffix, prefix := style.Transition(curStyle, w.Style)
		b.WriteString(suffix)
		curStyle = w.Style

		text := style.Sanitize(w.Text)
		leading := prefix
		if leading == "" {
			leading = text
		}
		if needsSpace(b.String(), leading) {
			b.WriteString(" ")
		}
		b.WriteString(prefix)
		b.WriteString(text)
	}

	b.WriteString(style.Close(curStyle))
	if inMargin {
		b.WriteString(style.MarginClose)
	}
	return b.String()
}

// needsSpace implements spec §4.1's spacing rule: suppress the space
// before a word when the accumulated text ends in a command-opening
// brace, or when the word begins with sentence-terminal punctuation.
func needsSpace(accumulated, next string) bool {
	if trailingCommand.MatchString(accumulated) {
		return false
	}
	if accumulated != "" && strings.HasSuffix(accumulated, "{") {
		return false
	}
	if next != "" && strings.ContainsRune(sentenceTerminal, rune(next[0])) {
		return false
	}
	return true
}

// Commit advances Start to end. Only legal for Start ≤ end ≤ len(stream)
// (spec §4.1 invariant).
func (c *Cursor) Commit(end int) {
	if end < c.Start || end > c.Stream.Len() {
		panic("cursor: commit out of range")
	}
	c.Start = end
}

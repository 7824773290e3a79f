/*
Package word holds the leaf data type of the layout pipeline: an ordered,
annotated sequence of words per column (spec §2.1, §3).

A WordStream is produced by a Markdown-parsing collaborator
(input/markdown) and is immutable once built; the scheduler only ever
reads slices of it through a cursor (engine/cursor).

*/
package word

// Style is the character style a word is set in. Style and position
// changes are word-granular — there is no mid-word transition (spec §3).
type Style int

const (
	Regular Style = iota
	Italic
	Bold
	BoldItalic
)

func (s Style) String() string {
	switch s {
	case Regular:
		return "regular"
	case Italic:
		return "italic"
	case Bold:
		return "bold"
	case BoldItalic:
		return "bold-italic"
	}
	return "unknown"
}

// Combine implements the Markdown style-combination rule: emphasis and
// strong compose, strong-within-emphasis (or vice versa) yields
// BoldItalic (spec §6, Markdown-to-WordStream contract).
func (s Style) Combine(other Style) Style {
	bold := s == Bold || s == BoldItalic || other == Bold || other == BoldItalic
	italic := s == Italic || s == BoldItalic || other == Italic || other == BoldItalic
	switch {
	case bold && italic:
		return BoldItalic
	case bold:
		return Bold
	case italic:
		return Italic
	default:
		return Regular
	}
}

// Position is a word's placement class: body text, counted for column
// fill, or marginalia, rendered as a side-note and never counted against
// a column's line fill (spec §2.1, Glossary).
type Position int

const (
	Body Position = iota
	Margin
)

func (p Position) String() string {
	if p == Margin {
		return "margin"
	}
	return "body"
}

// Word is the atomic, immutable unit the scheduler operates on.
type Word struct {
	Text     string
	Style    Style
	Position Position
}

// Stream is an ordered sequence of Words belonging to one column.
//
// Invariant: style and position changes occur only at word boundaries —
// enforced by construction, since Word itself carries a single Style and
// a single Position for its whole Text.
type Stream []Word

// Len returns the number of words in the stream.
func (s Stream) Len() int { return len(s) }

// Slice returns the half-open range [start, end) of the stream. Callers
// (engine/cursor) are responsible for keeping 0 ≤ start ≤ end ≤ Len().
func (s Stream) Slice(start, end int) Stream {
	return s[start:end]
}

// BodyWords counts words in [start, end) whose position is Body —
// marginalia do not count against a column's line fill (spec §2.1).
func (s Stream) BodyWords(start, end int) int {
	n := 0
	for _, w := range s[start:end] {
		if w.Position == Body {
			n++
		}
	}
	return n
}

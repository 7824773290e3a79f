/*
Package style is the serializer's transition table: the state machine
over (style, position) expressed as an explicit table rather than nested
conditionals (spec §9, design note "String-concatenation serializer").

The table is deliberately static and tested in isolation —
engine/cursor only ever looks transitions up here, it never computes
brace nesting itself.

*/
package style

import "github.com/dafset/dafset/engine/word"

// transition is the exact opening/closing command string pair emitted
// when moving from one style to another (spec §4.2 "StylePrefix/Suffix
// table").
type transition struct {
	suffix string // closes the *previous* style's open groups
	prefix string // opens the *new* style's groups
}

// Nesting order is Italic (outer), Bold (inner) — reverse-engineered
// from the worked example in spec §8 S3: "**bold** *italic* ***bold and
// italic*** **bold**" renders as
// `\textbf{bold} \textit{italic \textbf{bold and italic}} \textbf{bold}`,
// which only holds if Bold nests inside an already-open Italic without
// re-opening it, while dropping Italic requires unwinding both braces.
var styleTransitions = [4][4]transition{
	word.Regular: {
		word.Regular:    {"", ""},
		word.Italic:     {"", `\textit{`},
		word.Bold:       {"", `\textbf{`},
		word.BoldItalic: {"", `\textit{\textbf{`},
	},
	word.Italic: {
		word.Regular:    {"}", ""},
		word.Italic:     {"", ""},
		word.Bold:       {"}", `\textbf{`},
		word.BoldItalic: {"", `\textbf{`},
	},
	word.Bold: {
		word.Regular:    {"}", ""},
		word.Italic:     {"}", `\textit{`},
		word.Bold:       {"", ""},
		word.BoldItalic: {"}", `\textit{\textbf{`},
	},
	word.BoldItalic: {
		word.Regular:    {"}}", ""},
		word.Italic:     {"}", ""},
		word.Bold:       {"}}", `\textbf{`},
		word.BoldItalic: {"", ""},
	},
}

// Transition returns the closing string for `from` and the opening
// string for `to`.
func Transition(from, to word.Style) (suffix, prefix string) {
	t := styleTransitions[from][to]
	return t.suffix, t.prefix
}

// Close returns the string that closes every group opened for s, used
// when a cursor reaches the end of its slice with groups still open
// (spec §4.1 "On exit, any remaining open groups are closed exactly").
func Close(s word.Style) string {
	suffix, _ := Transition(s, word.Regular)
	return suffix
}

// MarginOpen is the prelude emitted when a Body→Margin transition opens
// a margin-note group (spec §4.1).
const MarginOpen = `\marginnote{\noindent\justifying\tiny`

// MarginClose closes a margin-note group opened by MarginOpen.
const MarginClose = `}`

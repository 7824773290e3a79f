/*
Package table computes TableConfig (spec §3): which of (left, center,
right) are present in a fragment and the width fraction each gets, given
solely the tuple of per-slot presence states.

*/
package table

import "github.com/dafset/dafset/core/dimen"

// Slot is one of the three column positions.
type Slot int

const (
	Left Slot = iota
	Center
	Right
)

// AllSlots lists the three column positions in canonical left-to-right
// order.
var AllSlots = [3]Slot{Left, Center, Right}

func (s Slot) String() string {
	switch s {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return "?"
}

// Presence is a slot's state in one fragment (spec §3, §4.4 "State
// machine (per cursor)").
type Presence int

const (
	// Absent: the slot has no remaining words and was absent (or never
	// present) in the preceding fragment.
	Absent Presence = iota
	// Empty: the slot is a placeholder, preserving geometric space for
	// exactly one skip fragment after its cursor just exhausted.
	Empty
	// Present: the slot has text to render in this fragment.
	Present
)

// Width is a fraction of the available text width (spec §3). The
// literal values are deliberately not exact splits — the renderer's
// inter-column separation consumes the remainder.
type Width float64

const (
	One       Width = 1.0
	Half      Width = 0.5
	Third     Width = 0.32
	TwoThirds Width = 0.655
)

// Config is one of the nine valid table shapes (spec §3), keyed by which
// slots are present (Present) vs merely holding their place (Empty) vs
// gone entirely (Absent).
type Config struct {
	Presence [3]Presence
	Width    [3]Width
	Ratio    string // the literal ratio string the renderer expects
}

// Count returns the number of slots that are Present or Empty — i.e.
// occupy a geometric column in the rendered table.
func (c Config) Count() int {
	n := 0
	for _, p := range c.Presence {
		if p != Absent {
			n++
		}
	}
	return n
}

// HasText reports whether slot s has text to render this fragment.
func (c Config) HasText(s Slot) bool { return c.Presence[s] == Present }

// Occupies reports whether slot s holds a geometric column (Present or
// Empty) this fragment.
func (c Config) Occupies(s Slot) bool { return c.Presence[s] != Absent }

// From derives the TableConfig from the tuple of per-slot presence
// states, matching the nine-row table in spec §3 exactly for the cases
// where every occupied slot is either all-present or all-empty-for-skip;
// mixed present/empty fragments (main-loop skip rows) reuse the same
// width geometry as their all-present sibling, since the renderer
// allocates the same column widths regardless of whether a slot's
// content is text or merely held space.
func From(l, c, r Presence) Config {
	lp, cp, rp := l != Absent, c != Absent, r != Absent
	switch {
	case lp && cp && rp:
		return Config{[3]Presence{l, c, r}, [3]Width{Third, Third, Third}, "0.32,0.32,0.32"}
	case lp && cp && !rp:
		return Config{[3]Presence{l, c, Absent}, [3]Width{Third, TwoThirds, 0}, "0.31"}
	case lp && !cp && rp:
		return Config{[3]Presence{l, Absent, r}, [3]Width{Half, 0, Half}, "0.5,0.5"}
	case !lp && cp && rp:
		return Config{[3]Presence{Absent, c, r}, [3]Width{0, TwoThirds, Third}, "0.655"}
	case lp && !cp && !rp:
		return Config{[3]Presence{l, Absent, Absent}, [3]Width{One, 0, 0}, "1"}
	case !lp && cp && !rp:
		return Config{[3]Presence{Absent, c, Absent}, [3]Width{0, One, 0}, "1"}
	case !lp && !cp && rp:
		return Config{[3]Presence{Absent, Absent, r}, [3]Width{0, 0, One}, "1"}
	default:
		return Config{} // zero value: no columns present
	}
}

// WidthFraction is the general formula recommended by spec §9 Open
// Question 3 for recomputing width fractions under a non-default column
// separation: each of n equally-sized columns gets the available width
// minus the (n-1) separators it touches, divided evenly and expressed as
// a fraction of the full available width.
func WidthFraction(n int, availableWidth, colSep dimen.DU) float64 {
	if n <= 0 {
		return 0
	}
	usable := availableWidth - dimen.DU(n-1)*colSep
	return float64(usable) / float64(n) / float64(availableWidth)
}

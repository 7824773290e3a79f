/*
Package oracle defines the two LineCountOracle variants (spec §4.2): a
fast, in-process shaper used only for initial estimates, and a slow,
authoritative renderer whose line counts are the ground truth the
scheduler's fill targets are always measured in.

Both variants are small interface values (spec §9 "Renderer as a
global"): the scheduler and WordFitSearch depend only on these
interfaces, so tests substitute deterministic fakes and the production
binary wires in the real shaper and the external TeX engine.

*/
package oracle

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/table"
)

// T traces to the core tracer — oracle invocations are the module's hot
// path, logged at the core (not engine) level like the teacher's
// low-level packages do.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Shaper is the fast, approximate line-count oracle (spec §4.2 "Shaper
// variant"). It is deterministic, single-threaded per call, and does no
// I/O — only the initial WordFitSearch estimate uses it.
type Shaper interface {
	// CountRuns lays spans out into a buffer of the given width and
	// returns the number of layout runs (lines) they occupy.
	CountRuns(spans []cursor.ShapeSpan, widthPt float64, metrics config.FontMetrics) int
}

// Renderer is the slow, authoritative line-count oracle (spec §4.2
// "Renderer variant"). Every call is pure with respect to its inputs
// (spec §5) and therefore safe to fan out onto worker goroutines.
type Renderer interface {
	// MeasureOne builds preamble+fragment+EndMarker with exactly one
	// populated column (slot, text) against the otherwise-given cfg,
	// renders it, and returns that column's line count. Used for the
	// main-loop minimum-line computation (spec §4.4 step 3) and for
	// single-column isolation (spec §4.2 "single-column" mode).
	MeasureOne(preamble string, cfg table.Config, slot table.Slot, text string) (int, error)

	// MeasureBatch renders len(texts) fragments, one per page, varying
	// only the candidate text for slot across the batch (spec §4.2
	// "batched" mode, §4.3 "batched oracle call") and returns one line
	// count per page in request order.
	MeasureBatch(preamble string, cfg table.Config, slot table.Slot, texts []string) ([]int, error)
}

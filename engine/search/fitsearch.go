/*
Package search implements WordFitSearch (spec §4.3): for one column,
find the largest end index such that the renderer reports ≤ target_lines
for [start, end), starting from the shaper's estimate and refining with
a small number of batched, authoritative renderer calls.

*/
package search

import (
	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/oracle"
	"github.com/dafset/dafset/engine/table"
)

// BlockSize is the fixed batch size for the renderer refine phase.
// K=20 is the spec-documented value known to converge in 1–2 renderer
// invocations (spec §4.3).
const BlockSize = 20

// Fit runs WordFitSearch for one column: find the largest end such that
// rendering [cur.Start, end) yields ≤ target lines, under the
// constraint that cur.Start < end ≤ cur.Len(). It does not commit the
// cursor — callers commit once they have accepted the fragment.
func Fit(cur *cursor.Cursor, shaper oracle.Shaper, renderer oracle.Renderer,
	preamble string, cfg table.Config, slot table.Slot, widthPt float64,
	metrics config.FontMetrics, target int, includeMargin bool) (int, error) {

	start := cur.Start
	total := cur.Len()
	if start >= total {
		return 0, core.ErrNoMoreWords(slot.String())
	}

	e0 := estimate(cur, shaper, widthPt, metrics, target)

	end, hit, err := addPhase(cur, renderer, preamble, cfg, slot, target, e0, total, includeMargin)
	if err != nil {
		return 0, err
	}
	if hit {
		return end, nil
	}

	// Open Question 1 (SPEC_FULL "Past-`len` shaper estimate"): the add
	// phase produced no hit because the first candidate of one of its
	// batches already overshot target (reaching the end of the stream
	// with every candidate in range is itself a hit at len). Search
	// leftward from e0 for an exact match; failing that, use every
	// remaining word.
	end, hit, err = subtractPhase(cur, renderer, preamble, cfg, slot, target, e0, start, includeMargin)
	if err != nil {
		return 0, err
	}
	if hit {
		return end, nil
	}
	return total, nil
}

// estimate performs the shaper pass (spec §4.3 step 1): linearly extend
// end from start until the shaper reports more than target runs; the
// last good end is e0. If the shaper never exceeds target, e0 = len.
func estimate(cur *cursor.Cursor, shaper oracle.Shaper, widthPt float64, metrics config.FontMetrics, target int) int {
	start, total := cur.Start, cur.Len()
	for end := start + 1; end <= total; end++ {
		spans := cur.ToShape(end)
		if shaper.CountRuns(spans, widthPt, metrics) > target {
			return end - 1
		}
	}
	return total
}

// addPhase measures successive blocks of candidate end indices starting
// at e0, moving rightward, in batched renderer calls (spec §4.3 step 2
// "add batch").
func addPhase(cur *cursor.Cursor, renderer oracle.Renderer, preamble string, cfg table.Config,
	slot table.Slot, target, e0, total int, includeMargin bool) (end int, hit bool, err error) {

	pos := e0
	for pos <= total {
		hi := pos + BlockSize
		if hi > total+1 {
			hi = total + 1
		}
		candidates := make([]int, 0, hi-pos)
		for e := pos; e < hi; e++ {
			if e > cur.Start {
				candidates = append(candidates, e)
			}
		}
		if len(candidates) == 0 {
			pos = hi
			continue
		}

		texts := make([]string, len(candidates))
		for i, c := range candidates {
			texts[i] = cur.ToRender(c, includeMargin)
		}
		counts, err := renderer.MeasureBatch(preamble, cfg, slot, texts)
		if err != nil {
			return 0, false, core.ErrRenderFailed("add-phase batch", err)
		}

		bestIdx, bestCount := -1, 0
		for i, n := range counts {
			if n <= target {
				bestIdx, bestCount = i, n
			} else {
				break // monotonic: later candidates only add more lines
			}
		}
		if bestIdx == -1 {
			// even the first candidate overshoots — no hit in this
			// direction at all.
			return 0, false, nil
		}
		if bestCount == target || candidates[bestIdx] == total {
			return candidates[bestIdx], true, nil
		}
		if bestIdx < len(candidates)-1 {
			// an interior candidate is the largest that still fits;
			// everything after it overshoots.
			return candidates[bestIdx], true, nil
		}
		pos = hi // batch was entirely ≤ target; try the next block
	}
	return 0, false, nil
}

// subtractPhase searches leftward from e0 for the largest index whose
// line count equals target exactly (spec §4.3 step 2 "subtract batch").
func subtractPhase(cur *cursor.Cursor, renderer oracle.Renderer, preamble string, cfg table.Config,
	slot table.Slot, target, e0, start int, includeMargin bool) (end int, hit bool, err error) {

	pos := e0
	for pos > start {
		lo := pos - BlockSize
		if lo < start {
			lo = start
		}
		candidates := make([]int, 0, pos-lo)
		for i := pos; i > lo; i-- {
			candidates = append(candidates, i) // descending
		}
		if len(candidates) == 0 {
			break
		}

		texts := make([]string, len(candidates))
		for i, c := range candidates {
			texts[i] = cur.ToRender(c, includeMargin)
		}
		counts, err := renderer.MeasureBatch(preamble, cfg, slot, texts)
		if err != nil {
			return 0, false, core.ErrRenderFailed("subtract-phase batch", err)
		}
		for i, n := range counts {
			if n == target {
				return candidates[i], true, nil
			}
		}
		pos = lo
	}
	return 0, false, nil
}

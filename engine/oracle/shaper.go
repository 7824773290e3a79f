package oracle

import (
	"strings"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/word"
)

// charWidthFactor approximates a glyph's advance width as a fraction of
// its point size, separately for each style — bold and italic faces run
// measurably wider/narrower than regular in most text faces. These are
// the kind of empirically-tuned constants the teacher's own shapers
// carry (compare glyphing.ShapedGlyph.XAdvance, computed from real font
// metrics we don't have access to here).
var charWidthFactor = map[word.Style]float64{
	word.Regular:    0.50,
	word.Italic:     0.48,
	word.Bold:       0.54,
	word.BoldItalic: 0.52,
}

// spaceWidthFactor is the advance width of an inter-word space, as a
// fraction of point size.
const spaceWidthFactor = 0.28

// GlypherShaper is a home-grown, in-process shaper for the common case
// where a full HarfBuzz-class shaping pass would be overkill — it only
// needs to approximate a line count, not place glyphs (spec §4.2
// "Shaper variant").
type GlypherShaper struct{}

var _ Shaper = GlypherShaper{}

// CountRuns greedily wraps spans into lines no wider than widthPt,
// returning the number of lines produced. It is deterministic and does
// no I/O, matching the shaper oracle's contract (spec §4.2).
func (GlypherShaper) CountRuns(spans []cursor.ShapeSpan, widthPt float64, metrics config.FontMetrics) int {
	if widthPt <= 0 {
		return 0
	}
	size := metrics.Size.Points()
	lines := 0
	lineWidth := 0.0
	started := false

	advance := func(w string, st word.Style) float64 {
		return float64(len([]rune(w))) * charWidthFactor[st] * size
	}
	spaceW := spaceWidthFactor * size

	for _, span := range spans {
		for _, w := range strings.Fields(span.Text) {
			wordW := advance(w, span.Style)
			needed := wordW
			if started {
				needed += spaceW
			}
			if started && lineWidth+needed > widthPt {
				lines++
				lineWidth = wordW
			} else {
				lineWidth += needed
				started = true
			}
		}
	}
	if started {
		lines++
	}
	return lines
}

package search_test

import (
	"strings"
	"testing"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/core/dimen"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/search"
	"github.com/dafset/dafset/engine/table"
	"github.com/dafset/dafset/engine/word"
)

// fakeShaper and fakeRenderer model line count as a simple ceil(words /
// wordsPerLine), letting tests control whether the two oracles agree
// (exact match, one renderer call) or disagree (forcing add/subtract
// refinement).
type fakeShaper struct{ wordsPerLine int }

func (f fakeShaper) CountRuns(spans []cursor.ShapeSpan, widthPt float64, metrics config.FontMetrics) int {
	n := 0
	for _, s := range spans {
		n += len(strings.Fields(s.Text))
	}
	return lines(n, f.wordsPerLine)
}

type fakeRenderer struct {
	wordsPerLine int
	calls        int
}

func (f *fakeRenderer) MeasureOne(preamble string, cfg table.Config, slot table.Slot, text string) (int, error) {
	f.calls++
	return lines(countWords(text), f.wordsPerLine), nil
}

func (f *fakeRenderer) MeasureBatch(preamble string, cfg table.Config, slot table.Slot, texts []string) ([]int, error) {
	f.calls++
	out := make([]int, len(texts))
	for i, t := range texts {
		out[i] = lines(countWords(t), f.wordsPerLine)
	}
	return out, nil
}

func countWords(text string) int {
	fields := strings.Fields(text)
	if len(fields) > 0 && strings.HasPrefix(fields[0], `\`) {
		fields = fields[1:]
	}
	return len(fields)
}

func lines(n, perLine int) int {
	if n == 0 {
		return 0
	}
	return (n + perLine - 1) / perLine
}

func makeStream(n int) word.Stream {
	s := make(word.Stream, n)
	for i := range s {
		s[i] = word.Word{Text: "word", Style: word.Regular, Position: word.Body}
	}
	return s
}

func testFont() config.FontConfig { return config.FontConfig{Command: `\font`} }
func testMetrics() config.FontMetrics {
	return config.FontMetrics{Size: 11 * dimen.PT, LineSkip: 13 * dimen.PT}
}

func TestFitAgreeingOraclesConvergeOnFirstRenderCall(t *testing.T) {
	cur := cursor.New(makeStream(50), testFont())
	shaper := fakeShaper{wordsPerLine: 5}
	renderer := &fakeRenderer{wordsPerLine: 5}
	cfg := table.From(table.Present, table.Absent, table.Absent)

	end, err := search.Fit(cur, shaper, renderer, "preamble", cfg, table.Left, 300, testMetrics(), 4, false)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if end != 20 {
		t.Errorf("end = %d, want 20 (4 lines * 5 words)", end)
	}
	if renderer.calls != 1 {
		t.Errorf("renderer was called %d times, want exactly 1 when shaper and renderer agree", renderer.calls)
	}
}

func TestFitDisagreeingOraclesStillHitsTarget(t *testing.T) {
	cur := cursor.New(makeStream(50), testFont())
	shaper := fakeShaper{wordsPerLine: 6} // shaper overestimates capacity
	renderer := &fakeRenderer{wordsPerLine: 4}
	cfg := table.From(table.Present, table.Absent, table.Absent)

	end, err := search.Fit(cur, shaper, renderer, "preamble", cfg, table.Left, 300, testMetrics(), 3, false)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	got := lines(countWords(cur.ToRender(end, false)), 4)
	if got != 3 {
		t.Errorf("rendered [0,%d) measures %d lines, want 3", end, got)
	}
}

func TestFitOnExhaustedCursorErrors(t *testing.T) {
	cur := cursor.New(makeStream(5), testFont())
	cur.Commit(5)
	shaper := fakeShaper{wordsPerLine: 5}
	renderer := &fakeRenderer{wordsPerLine: 5}
	cfg := table.From(table.Present, table.Absent, table.Absent)

	_, err := search.Fit(cur, shaper, renderer, "preamble", cfg, table.Left, 300, testMetrics(), 4, false)
	if err == nil {
		t.Fatal("expected an error for an already-exhausted cursor")
	}
}

func TestFitNeverExceedsStreamLength(t *testing.T) {
	cur := cursor.New(makeStream(10), testFont())
	shaper := fakeShaper{wordsPerLine: 1}
	renderer := &fakeRenderer{wordsPerLine: 1}
	cfg := table.From(table.Present, table.Absent, table.Absent)

	end, err := search.Fit(cur, shaper, renderer, "preamble", cfg, table.Left, 300, testMetrics(), 1000, false)
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if end != 10 {
		t.Errorf("end = %d, want 10 (whole stream, target unreachable)", end)
	}
}

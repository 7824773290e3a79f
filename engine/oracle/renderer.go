package oracle

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tsawler/tabula"
	tabulatext "github.com/tsawler/tabula/text"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/engine/document"
	"github.com/dafset/dafset/engine/table"
)

// TeXRenderer is the real binding of the Renderer interface to an
// external TeX-family engine, invoked as a subprocess exactly the way
// the teacher shells out to `fc-list` (core/locate/resources/fc.go):
// resolve the binary from configuration, run it in a scratch directory,
// and wrap any failure with the core's error taxonomy.
type TeXRenderer struct {
	// EngineBinary is the rendering engine (xelatex/lualatex-family),
	// either a path or a bare name that os/exec looks up on PATH —
	// TeXRenderer does not validate it and only shells out to what it
	// is given.
	EngineBinary string
	WorkDir      string
	LogDir       string // when non-empty, failing TeX sources are dumped here
}

// lineYTolerance groups text fragments into the same rendered line when
// their baselines fall within this many PDF points of each other —
// mirrors tabula's own xTolerance constant for X-axis fragment merging,
// applied here on the Y axis to recover line structure.
const lineYTolerance = 1.5

var _ Renderer = (*TeXRenderer)(nil)

// MeasureOne renders a single-page document with cfg's geometry and slot
// populated by text, and returns that column's line count.
func (r *TeXRenderer) MeasureOne(preamble string, cfg table.Config, slot table.Slot, text string) (int, error) {
	counts, err := r.measurePages(preamble, []document.Fragment{singleSlotFragment(cfg, slot, text)})
	if err != nil {
		return 0, err
	}
	return counts[0], nil
}

// MeasureBatch renders one page per candidate text and returns their
// line counts in request order (spec §4.3's "batched oracle call").
func (r *TeXRenderer) MeasureBatch(preamble string, cfg table.Config, slot table.Slot, texts []string) ([]int, error) {
	frags := make([]document.Fragment, len(texts))
	for i, t := range texts {
		frags[i] = singleSlotFragment(cfg, slot, t)
	}
	return r.measurePages(preamble, frags)
}

func singleSlotFragment(cfg table.Config, slot table.Slot, text string) document.Fragment {
	return document.Fragment{
		Config: cfg,
		Texts:  map[table.Slot]string{slot: text},
	}
}

// measurePages builds one document with one page per fragment
// (separated by \clearpage), renders it once, and counts non-empty
// lines on each resulting PDF page — amortizing the engine's
// startup cost across the whole batch (spec §4.2, §4.3).
func (r *TeXRenderer) measurePages(preamble string, frags []document.Fragment) ([]int, error) {
	var tex string
	{
		body := preamble
		for i, f := range frags {
			if i > 0 {
				body += "\n\\clearpage\n"
			} else {
				body += "\n"
			}
			body += f.Render()
		}
		tex = body + document.EndMarker
	}

	pdf, err := r.render(tex)
	if err != nil {
		return nil, err
	}
	pages, err := extractLines(pdf)
	if err != nil {
		return nil, core.ErrExtractFailed("counting lines per page", err)
	}
	if len(pages) != len(frags) {
		return nil, core.ErrExtractFailed(
			fmt.Sprintf("expected %d pages, renderer produced %d", len(frags), len(pages)), nil)
	}
	return pages, nil
}

// Render invokes the external engine once on a complete, already
// assembled TeX document and returns the PDF bytes it produced — the
// entry point document.Assemble's caller uses for the final render,
// as opposed to the per-candidate measuring passes above.
func (r *TeXRenderer) Render(tex string) ([]byte, error) {
	return r.render(tex)
}

// render invokes the external engine once on tex and returns the PDF
// bytes it produced (spec §6 "render(tex_string) -> pdf_bytes |
// RenderError").
func (r *TeXRenderer) render(tex string) ([]byte, error) {
	job := fmt.Sprintf("daf-%d", time.Now().UnixNano())
	texPath := filepath.Join(r.WorkDir, job+".tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return nil, core.ErrRenderFailed("cannot write TeX source", err)
	}

	cmd := exec.Command(r.EngineBinary, "-interaction=nonstopmode",
		"-output-directory="+r.WorkDir, texPath)
	out, runErr := cmd.CombinedOutput()
	if runErr != nil {
		if r.LogDir != "" {
			_ = os.WriteFile(filepath.Join(r.LogDir, job+".tex"), []byte(tex), 0644)
			_ = os.WriteFile(filepath.Join(r.LogDir, job+".log"), out, 0644)
		}
		return nil, core.ErrRenderFailed(string(out), runErr)
	}

	pdf, err := os.ReadFile(filepath.Join(r.WorkDir, job+".pdf"))
	if err != nil {
		return nil, core.ErrRenderFailed("engine did not produce a PDF", err)
	}
	return pdf, nil
}

// extractLines runs tabula's text extractor over each page of pdf and
// clusters the resulting fragments into lines by Y-coordinate, returning
// the number of non-empty lines per page (spec §4.2 "extracts plain text
// from the PDF by page, counts non-empty lines per page").
func extractLines(pdf []byte) ([]int, error) {
	doc, err := tabula.Parse(pdf)
	if err != nil {
		return nil, err
	}
	counts := make([]int, 0, doc.NumPages())
	for p := 0; p < doc.NumPages(); p++ {
		page, err := doc.Page(p)
		if err != nil {
			return nil, err
		}
		resources, err := page.Resources()
		if err != nil {
			return nil, err
		}
		ex := tabulatext.NewExtractor()
		ex.SetResourceContext(resources, doc.ResolveRef)
		frags, err := ex.Extract(page.ContentStream())
		if err != nil {
			return nil, err
		}
		counts = append(counts, countLines(frags))
	}
	return counts, nil
}

// countLines clusters fragments whose baselines lie within
// lineYTolerance of each other into a single line, and returns the
// number of lines that contain non-whitespace text.
func countLines(frags []tabulatext.TextFragment) int {
	ys := make([]float64, 0, len(frags))
	byY := map[float64][]tabulatext.TextFragment{}
	for _, f := range frags {
		placed := false
		for _, y := range ys {
			if abs(y-f.Y) <= lineYTolerance {
				byY[y] = append(byY[y], f)
				placed = true
				break
			}
		}
		if !placed {
			ys = append(ys, f.Y)
			byY[f.Y] = []tabulatext.TextFragment{f}
		}
	}
	sort.Float64s(ys)
	n := 0
	for _, y := range ys {
		for _, f := range byY[y] {
			if len(strings.TrimSpace(f.Text)) > 0 {
				n++
				break
			}
		}
	}
	return n
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

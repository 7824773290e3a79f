/*
Package document assembles the final TeX document: preamble, ordered
fragments, optional title, end marker (spec §2.7, §4.5).

It also owns fragment-level rendering — turning a table.Config plus
per-slot rendered text into the renderer's multi-column environment —
since both the scheduler (building the final document) and the renderer
oracle (measuring a candidate fragment in isolation) need the identical
wire format.

*/
package document

import (
	"fmt"
	"strings"

	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/table"
)

// EndMarker terminates every rendered document (spec §6 "Preamble
// format").
const EndMarker = "\n\\end{sloppypar}\\end{document}"

// Fragment is a single multi-column block, exactly as defined in spec
// §3: each slot is in one of three shapes — text, empty placeholder, or
// absent.
type Fragment struct {
	Config table.Config
	// Texts holds the already-serialized renderer command string for
	// each slot that is table.Present. Slots that are table.Empty or
	// table.Absent have no entry.
	Texts map[table.Slot]string
}

// placeholderCell is emitted for a table.Empty slot: it occupies the
// geometric column width but contributes no lines.
const placeholderCell = `\mbox{}`

// Render turns a Fragment into the renderer's multi-column environment
// string (Glossary: "one call to the renderer's multi-column
// environment").
func (f Fragment) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\begin{dafrow}{%s}\n", f.Config.Ratio)
	for _, slot := range []table.Slot{table.Left, table.Center, table.Right} {
		switch f.Config.Presence[slot] {
		case table.Present:
			fmt.Fprintf(&b, "\\dafcol{%s}\n", f.Texts[slot])
		case table.Empty:
			fmt.Fprintf(&b, "\\dafcol{%s}\n", placeholderCell)
		case table.Absent:
			// no geometric column at all
		}
	}
	b.WriteString("\\end{dafrow}")
	return b.String()
}

// Document is the final rendered artifact pairing TeX source with its
// typeset PDF (spec §6 "Output").
type Document struct {
	Tex string
	PDF []byte
}

// Assemble concatenates the preamble, the ordered fragments (joined by
// newlines), and EndMarker (spec §4.5).
//
// The title fragment, when present, must already have been positioned by
// the caller at the correct point in `fragments` — spec §4.4 "Initial
// phase" step 3 places it right after the opening skip and before the
// main loop's first fragment; Assemble itself has no opinion on
// ordering, it only concatenates what it is given.
func Assemble(preamble string, fragments []Fragment) string {
	var b strings.Builder
	b.WriteString(preamble)
	for _, f := range fragments {
		b.WriteString("\n")
		b.WriteString(f.Render())
	}
	b.WriteString(EndMarker)
	return b.String()
}

// Preamble builds the document preamble once from fonts and page
// geometry (spec §4.5, §6 "Preamble format"): document class and paper
// size, required packages, three named font families with style
// variants, margins, zero paragraph indent, column separation,
// ragged-bottom, opening `\begin{document}\begin{sloppypar}`.
func Preamble(cfg *config.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\documentclass[%.4fpt paper]{article}\n", cfg.PaperWidth.Points())
	b.WriteString("\\usepackage[margin-note]{marginnote}\n")
	b.WriteString("\\usepackage{sectsty}\n")
	b.WriteString("\\usepackage{ragged2e}\n")
	b.WriteString("\\usepackage{multicol}\n")
	b.WriteString("\\usepackage{fontspec}\n")
	fmt.Fprintf(&b, "\\geometry{paperwidth=%.4fpt,paperheight=%.4fpt,left=%.4fpt,right=%.4fpt,top=%.4fpt,bottom=%.4fpt,footskip=%.4fpt,bindingoffset=%.4fpt,marginparwidth=%.4fpt}\n",
		cfg.PaperWidth.Points(), cfg.PaperHeight.Points(),
		cfg.Margins.Left.Points(), cfg.Margins.Right.Points(),
		cfg.Margins.Top.Points(), cfg.Margins.Bottom.Points(),
		cfg.FootSkip.Points(), cfg.BindingOffset.Points(), cfg.MarginNoteW.Points())

	for _, fc := range []struct {
		name string
		font config.FontConfig
	}{{"left", cfg.Left}, {"center", cfg.Center}, {"right", cfg.Right}} {
		fmt.Fprintf(&b, "\\newfontfamily%s[Path=%s/]{%s}\n", fc.font.Command, fc.font.Path, fc.name)
	}

	fmt.Fprintf(&b, "\\setlength{\\columnsep}{%.4fpt}\n", cfg.ColumnSep.Points())
	b.WriteString("\\setlength{\\parindent}{0pt}\n")
	b.WriteString("\\raggedbottom\n")
	b.WriteString("\\newenvironment{dafrow}[1]{\\noindent}{\\par}\n")
	b.WriteString("\\newcommand{\\dafcol}[1]{#1\\hfill}\n")
	b.WriteString("\\begin{document}\n\\begin{sloppypar}")
	return b.String()
}

// TitleFragment builds the optional title fragment: (L, title-in-center,
// R), each filled for 4 lines, with the center cell containing the title
// text wrapped in a large centered block (spec §4.4 "Initial phase"
// step 3).
func TitleFragment(cfg table.Config, left, title, right string) Fragment {
	return Fragment{
		Config: cfg,
		Texts: map[table.Slot]string{
			table.Left:   left,
			table.Center: fmt.Sprintf("{\\centering\\Large %s\\par}", title),
			table.Right:  right,
		},
	}
}

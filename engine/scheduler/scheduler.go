/*
Package scheduler implements LayoutScheduler (spec §4.4): the state
machine that drives three column cursors to completion, emitting one
document.Fragment per row and alternating full fragments with
single-line "skip" fragments that let a newly exhausted column's
neighbor breathe before the table geometry changes shape.

*/
package scheduler

import (
	"go.uber.org/multierr"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/document"
	"github.com/dafset/dafset/engine/oracle"
	"github.com/dafset/dafset/engine/search"
	"github.com/dafset/dafset/engine/table"
)

// T traces to the engine tracer — the scheduler is the top-level
// orchestrator, logged at the same level as the teacher's frame/flow
// packages.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// openingTarget and skipTarget are the fixed fill targets used outside
// the main loop's minimum-line computation (spec §4.4 "Initial phase").
const (
	openingTarget = 4
	skipTarget    = 1
)

// Scheduler drives the three column cursors to completion against one
// shared preamble and pair of oracles (spec §4.4).
type Scheduler struct {
	Cursors  [3]*cursor.Cursor // indexed by table.Slot
	Shaper   oracle.Shaper
	Renderer oracle.Renderer
	Config   *config.Config
	Preamble string

	wasPresent [3]bool
}

// New builds a Scheduler over three already-positioned cursors.
func New(left, center, right *cursor.Cursor, shaper oracle.Shaper, renderer oracle.Renderer, cfg *config.Config, preamble string) *Scheduler {
	s := &Scheduler{Shaper: shaper, Renderer: renderer, Config: cfg, Preamble: preamble}
	s.Cursors[table.Left] = left
	s.Cursors[table.Center] = center
	s.Cursors[table.Right] = right
	return s
}

// Run executes the full layout schedule and returns the ordered
// fragments ready for document.Assemble (spec §4.4, §4.5).
func (s *Scheduler) Run() ([]document.Fragment, error) {
	if s.allDone() {
		return nil, nil
	}

	var frags []document.Fragment

	// When at most one column starts with any words at all, the opening
	// and skip fragments have nothing to do — both exist only to let
	// left and right breathe around a genuinely three- or two-column
	// start (spec §8 S2: a lone populated column is a single fragment,
	// full stop).
	if s.startingColumns() > 1 {
		initial, err := s.runInitialPhase()
		if err != nil {
			return initial, err
		}
		frags = initial
	}
	return s.runMainLoop(frags)
}

// startingColumns counts how many of the three cursors have any words at
// all before layout begins.
func (s *Scheduler) startingColumns() int {
	n := 0
	for _, slot := range table.AllSlots {
		if s.Cursors[slot].Len() > 0 {
			n++
		}
	}
	return n
}

// runInitialPhase builds the opening fragment, the forced-empty-center
// skip fragment, and the optional title fragment (spec §4.4 "Initial
// phase").
func (s *Scheduler) runInitialPhase() ([]document.Fragment, error) {
	var frags []document.Fragment

	// Initial phase, step 1: opening fragment — left and right at a
	// fixed four-line target, center genuinely absent (spec §4.4).
	openCfg := table.From(s.presenceByWords(table.Left), table.Absent, s.presenceByWords(table.Right))
	openFrag, err := s.fillFragment(openCfg, openingTarget)
	if err != nil {
		return frags, err
	}
	frags = append(frags, openFrag)
	s.updateWasPresent(openCfg)

	// Initial phase, step 2: a one-line skip fragment with center
	// forced to an empty placeholder, regardless of whether the center
	// cursor already has words — it has not appeared in any fragment
	// yet, so there is nothing of its own to vacate (spec §4.4).
	skipCfg := table.From(s.presenceByWords(table.Left), table.Empty, s.presenceByWords(table.Right))
	skipFrag, err := s.fillFragment(skipCfg, skipTarget)
	if err != nil {
		return frags, err
	}
	frags = append(frags, skipFrag)
	s.wasPresent[table.Left] = skipCfg.Presence[table.Left] == table.Present
	s.wasPresent[table.Center] = false
	s.wasPresent[table.Right] = skipCfg.Presence[table.Right] == table.Present

	// Initial phase, step 3: optional title fragment.
	if s.Config != nil && s.Config.Title != "" {
		titleCfg := table.From(s.presenceByWords(table.Left), table.Present, s.presenceByWords(table.Right))
		titleFrag, err := s.fillTitleFragment(titleCfg, s.Config.Title)
		if err != nil {
			return frags, err
		}
		frags = append(frags, titleFrag)
		s.updateWasPresent(titleCfg)
	}

	return frags, nil
}

// runMainLoop drives the cursors to completion, appending to an
// already-built (possibly empty) list of initial-phase fragments (spec
// §4.4 "Main loop").
func (s *Scheduler) runMainLoop(frags []document.Fragment) ([]document.Fragment, error) {
	for !s.allDone() {
		cfg := s.currentPresence()
		if cfg.Count() == 0 {
			return frags, core.ErrNoColumns()
		}
		present := presentSlots(cfg)

		if len(present) == 1 {
			slot := present[0]
			cur := s.Cursors[slot]
			text := cur.ToRender(cur.Len(), true)
			frags = append(frags, document.Fragment{
				Config: cfg,
				Texts:  map[table.Slot]string{slot: text},
			})
			cur.Commit(cur.Len())
			s.updateWasPresent(cfg)
			break
		}

		frag, err := s.fillMainFragment(cfg, present)
		if err != nil {
			return frags, err
		}
		frags = append(frags, frag)
		s.updateWasPresent(cfg)

		if s.allDone() {
			break
		}

		skipCfg := s.currentPresence()
		skipFrag, err := s.fillFragment(skipCfg, skipTarget)
		if err != nil {
			return frags, err
		}
		frags = append(frags, skipFrag)
		s.updateWasPresent(skipCfg)
	}

	return frags, nil
}

// fillMainFragment computes the main loop's per-fragment minimum-line
// anchor (spec §4.4 step 3): every present-with-text column is measured
// in isolation, the smallest count becomes the shared target, the
// column that produced it commits its whole isolated render, and every
// other column runs WordFitSearch against that target.
func (s *Scheduler) fillMainFragment(cfg table.Config, present []table.Slot) (document.Fragment, error) {
	type measurement struct {
		slot  table.Slot
		text  string
		count int
	}
	var measurements []measurement
	var measureErr error
	for _, slot := range present {
		cur := s.Cursors[slot]
		text := cur.ToRender(cur.Len(), true)
		n, err := s.Renderer.MeasureOne(s.Preamble, cfg, slot, text)
		if err != nil {
			measureErr = multierr.Append(measureErr, err)
			continue
		}
		measurements = append(measurements, measurement{slot, text, n})
	}
	if len(measurements) == 0 {
		return document.Fragment{}, core.ErrMinLinesFailed(measureErr)
	}

	anchor := measurements[0]
	for _, m := range measurements[1:] {
		if m.count < anchor.count {
			anchor = m
		}
	}
	target := anchor.count

	frag := document.Fragment{Config: cfg, Texts: map[table.Slot]string{}}
	for _, slot := range present {
		cur := s.Cursors[slot]
		if slot == anchor.slot {
			frag.Texts[slot] = anchor.text
			cur.Commit(cur.Len())
			continue
		}
		end, err := search.Fit(cur, s.Shaper, s.Renderer, s.Preamble, cfg, slot,
			s.widthPt(cfg, slot), s.Config.Metrics, target, true)
		if err != nil {
			return document.Fragment{}, err
		}
		frag.Texts[slot] = cur.ToRender(end, true)
		cur.Commit(end)
	}
	return frag, nil
}

// fillFragment fits every present-with-text slot to a fixed target
// independently (used for the opening and skip fragments, which have no
// minimum-line anchor to compute).
func (s *Scheduler) fillFragment(cfg table.Config, target int) (document.Fragment, error) {
	frag := document.Fragment{Config: cfg, Texts: map[table.Slot]string{}}
	for _, slot := range table.AllSlots {
		if cfg.Presence[slot] != table.Present {
			continue
		}
		cur := s.Cursors[slot]
		if cur.Done() {
			continue
		}
		end, err := search.Fit(cur, s.Shaper, s.Renderer, s.Preamble, cfg, slot,
			s.widthPt(cfg, slot), s.Config.Metrics, target, true)
		if err != nil {
			return frag, err
		}
		frag.Texts[slot] = cur.ToRender(end, true)
		cur.Commit(end)
	}
	return frag, nil
}

// fillTitleFragment fits left and right to the opening target, same as
// the first fragment, and sets center to the literal title text (spec
// §4.4 "Initial phase" step 3).
func (s *Scheduler) fillTitleFragment(cfg table.Config, title string) (document.Fragment, error) {
	frag := document.Fragment{Config: cfg, Texts: map[table.Slot]string{}}
	for _, slot := range []table.Slot{table.Left, table.Right} {
		if cfg.Presence[slot] != table.Present {
			continue
		}
		cur := s.Cursors[slot]
		if cur.Done() {
			continue
		}
		end, err := search.Fit(cur, s.Shaper, s.Renderer, s.Preamble, cfg, slot,
			s.widthPt(cfg, slot), s.Config.Metrics, openingTarget, true)
		if err != nil {
			return frag, err
		}
		frag.Texts[slot] = cur.ToRender(end, true)
		cur.Commit(end)
	}
	titled := document.TitleFragment(cfg, frag.Texts[table.Left], title, frag.Texts[table.Right])
	return titled, nil
}

// widthPt is the column's usable text width in points (spec §4.2): the
// page's full text width times the slot's width fraction, minus the
// inter-column separators the row's other occupied columns introduce.
func (s *Scheduler) widthPt(cfg table.Config, slot table.Slot) float64 {
	textWidth := (s.Config.PaperWidth - s.Config.Margins.Left - s.Config.Margins.Right).Points()
	fraction := float64(cfg.Width[slot])
	n := cfg.Count()
	colSep := s.Config.ColumnSep.Points()
	return textWidth*fraction - float64(n-1)*colSep
}

func (s *Scheduler) hasWords(slot table.Slot) bool { return !s.Cursors[slot].Done() }

func (s *Scheduler) allDone() bool {
	return s.Cursors[table.Left].Done() && s.Cursors[table.Center].Done() && s.Cursors[table.Right].Done()
}

// presenceByWords reports Present if the slot's cursor still has words,
// Absent otherwise — used for the initial-phase fragments (opening, skip
// and title); unlike currentPresence it never yields Empty.
func (s *Scheduler) presenceByWords(slot table.Slot) table.Presence {
	if s.hasWords(slot) {
		return table.Present
	}
	return table.Absent
}

// currentPresence implements the general per-slot state machine (spec
// §4.4 "State machine (per cursor)"): Present while words remain, Empty
// for exactly one fragment right after a column exhausts, Absent
// afterward.
func (s *Scheduler) currentPresence() table.Config {
	var p [3]table.Presence
	for _, slot := range table.AllSlots {
		switch {
		case s.hasWords(slot):
			p[slot] = table.Present
		case s.wasPresent[slot]:
			p[slot] = table.Empty
		default:
			p[slot] = table.Absent
		}
	}
	return table.From(p[0], p[1], p[2])
}

func (s *Scheduler) updateWasPresent(cfg table.Config) {
	for _, slot := range table.AllSlots {
		s.wasPresent[slot] = cfg.Presence[slot] == table.Present
	}
}

func presentSlots(cfg table.Config) []table.Slot {
	var out []table.Slot
	for _, slot := range table.AllSlots {
		if cfg.Presence[slot] == table.Present {
			out = append(out, slot)
		}
	}
	return out
}

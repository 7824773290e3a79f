/*
Package config loads the frozen configuration value consumed by the
layout scheduler and its collaborators (spec §6).

Configuration is read once, from a single YAML file, and converted into
typed fields. Nothing downstream of Load re-reads the file or mutates
the returned value; callers that need the handful of global,
string-keyed settings the teacher's stack expects (an "app-key" style
lookup) can reach them through the package-level schuko/gconf instance,
which Load also populates.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package config

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/dimen"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}

// FontConfig names one column's font: the handle the shaper/renderer
// collaborators resolve (out of scope here, §1) and the TeX family
// command name the renderer serializer emits (§4.1).
type FontConfig struct {
	Path    string `yaml:"path"`
	Command string `yaml:"command"` // e.g. `\bodyfont`
}

// Margins are the four physical page margins (spec §6).
type Margins struct {
	Left   dimen.DU
	Right  dimen.DU
	Top    dimen.DU
	Bottom dimen.DU
}

// FontMetrics is the size and line-skip the shaper oracle and the
// preamble both need.
type FontMetrics struct {
	Size     dimen.DU
	LineSkip dimen.DU
}

// SourceText is the resolved plain-text content of the three columns,
// regardless of which of the three configured input shapes (§6: three
// inline strings; three file paths; one file with three paragraphs)
// produced it.
type SourceText struct {
	Left, Center, Right string
}

// Config is the frozen value the core consumes. Everything the scheduler,
// cursors, oracles and document assembler need is a field here; nothing
// downstream calls back into gconf.
type Config struct {
	AppKey string

	PaperWidth  dimen.DU
	PaperHeight dimen.DU
	Margins     Margins

	FootSkip       dimen.DU
	BindingOffset  dimen.DU
	MarginNoteW    dimen.DU
	ColumnSep      dimen.DU
	Metrics        FontMetrics
	Left, Center, Right FontConfig

	Source SourceText
	Title  string // optional; empty means no title fragment

	Log bool // dump the TeX source and engine output of each failed render to logs/
}

// rawConfig mirrors the on-disk YAML shape; field names match the
// options table in spec §6.
type rawConfig struct {
	AppKey string `yaml:"app-key"`

	Paper struct {
		Width  string `yaml:"width"`
		Height string `yaml:"height"`
	} `yaml:"paper"`

	Margins struct {
		Left   string `yaml:"left"`
		Right  string `yaml:"right"`
		Top    string `yaml:"top"`
		Bottom string `yaml:"bottom"`
	} `yaml:"margins"`

	FootSkip      string `yaml:"foot-skip"`
	BindingOffset string `yaml:"binding-offset"`
	MarginNoteW   string `yaml:"margin-note-width"`
	ColumnSep     string `yaml:"column-sep"`

	Font struct {
		Size     string `yaml:"size"`
		LineSkip string `yaml:"line-skip"`
	} `yaml:"font"`

	Fonts struct {
		Left   FontConfig `yaml:"left"`
		Center FontConfig `yaml:"center"`
		Right  FontConfig `yaml:"right"`
	} `yaml:"fonts"`

	Source struct {
		LeftText   string `yaml:"left-text"`
		CenterText string `yaml:"center-text"`
		RightText  string `yaml:"right-text"`
		LeftFile   string `yaml:"left-file"`
		CenterFile string `yaml:"center-file"`
		RightFile  string `yaml:"right-file"`
		File       string `yaml:"file"` // one file, three blank-line-separated paragraphs
	} `yaml:"source"`

	Title string `yaml:"title"`
	Log   bool   `yaml:"log"`
}

// defaultColumnSep is the reference column separation the literal width
// fractions in spec §3 (0.32, 0.655, 0.31, 0.655) were derived against
// (SPEC_FULL "Configurable column separation").
const defaultColumnSep = 10 * dimen.PT

// Load reads and validates configuration from path, snapshots it into a
// Config, and mirrors the handful of globally-keyed settings (app-key)
// into the process-wide schuko/gconf instance.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.ERawTextRead, "cannot read configuration file %s", path)
	}
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, core.WrapError(err, core.EConfigParse, "cannot parse configuration file %s", path)
	}
	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	gconf.Initialize(newAdapter(map[string]string{
		"app-key": cfg.AppKey,
	}))
	T().Infof("configuration loaded from %s", path)
	return cfg, nil
}

func fromRaw(raw rawConfig) (*Config, error) {
	cfg := &Config{
		AppKey: raw.AppKey,
		Left:   raw.Fonts.Left,
		Center: raw.Fonts.Center,
		Right:  raw.Fonts.Right,
		Title:  raw.Title,
		Log:    raw.Log,
	}
	var perr error
	parse := func(label, s string, dflt dimen.DU) dimen.DU {
		if s == "" {
			return dflt
		}
		d, _, err := dimen.ParseDimen(s)
		if err != nil && perr == nil {
			perr = core.WrapError(err, core.EConfigParse, "cannot parse %s = %q", label, s)
		}
		return d
	}
	cfg.PaperWidth = parse("paper.width", raw.Paper.Width, dimen.DINA4.X)
	cfg.PaperHeight = parse("paper.height", raw.Paper.Height, dimen.DINA4.Y)
	cfg.Margins.Left = parse("margins.left", raw.Margins.Left, 72*dimen.PT)
	cfg.Margins.Right = parse("margins.right", raw.Margins.Right, 72*dimen.PT)
	cfg.Margins.Top = parse("margins.top", raw.Margins.Top, 72*dimen.PT)
	cfg.Margins.Bottom = parse("margins.bottom", raw.Margins.Bottom, 72*dimen.PT)
	cfg.FootSkip = parse("foot-skip", raw.FootSkip, 30*dimen.PT)
	cfg.BindingOffset = parse("binding-offset", raw.BindingOffset, 0)
	cfg.MarginNoteW = parse("margin-note-width", raw.MarginNoteW, 60*dimen.PT)
	cfg.ColumnSep = parse("column-sep", raw.ColumnSep, defaultColumnSep)
	cfg.Metrics.Size = parse("font.size", raw.Font.Size, 11*dimen.PT)
	cfg.Metrics.LineSkip = parse("font.line-skip", raw.Font.LineSkip, 13*dimen.PT)
	if perr != nil {
		return nil, perr
	}

	if raw.Source.File != "" {
		paras, err := splitThreeParagraphs(raw.Source.File)
		if err != nil {
			return nil, err
		}
		cfg.Source = *paras
	} else if raw.Source.LeftFile != "" || raw.Source.CenterFile != "" || raw.Source.RightFile != "" {
		l, ok1 := readOrEmpty(raw.Source.LeftFile)
		c, ok2 := readOrEmpty(raw.Source.CenterFile)
		r, ok3 := readOrEmpty(raw.Source.RightFile)
		if !ok1 || !ok2 || !ok3 {
			return nil, core.Error(core.ERawTextRead, "cannot read one of the source files")
		}
		cfg.Source = SourceText{Left: l, Center: c, Right: r}
	} else {
		cfg.Source = SourceText{
			Left:   raw.Source.LeftText,
			Center: raw.Source.CenterText,
			Right:  raw.Source.RightText,
		}
	}
	return cfg, nil
}

func readOrEmpty(path string) (string, bool) {
	if path == "" {
		return "", true
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// splitThreeParagraphs splits a single source file into exactly three
// paragraphs, separated by a blank line. Produces ENumberOfParagraphs
// when the count does not match (spec §7).
func splitThreeParagraphs(path string) (*SourceText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.ERawTextRead, "cannot read source file %s", path)
	}
	paras := splitBlankLines(string(data))
	if len(paras) != 3 {
		return nil, core.Error(core.ENumberOfParagraphs, "expected 3 paragraphs in %s, found %d", path, len(paras))
	}
	return &SourceText{Left: paras[0], Center: paras[1], Right: paras[2]}, nil
}

func splitBlankLines(s string) []string {
	var out []string
	var cur []byte
	blank := 0
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = nil
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		cur = append(cur, c)
		if c == '\n' {
			if len(cur) >= 2 && cur[len(cur)-2] == '\n' {
				blank++
				if blank == 1 {
					cur = cur[:len(cur)-2]
					flush()
				}
			} else {
				blank = 0
			}
		}
	}
	flush()
	return out
}

// adapter is a minimal schuko.Configuration backed by a string map, used
// only to seed the handful of globally-keyed settings (app-key) that the
// teacher's collaborator packages expect to find in gconf.
type adapter struct {
	values map[string]string
}

func newAdapter(values map[string]string) *adapter {
	return &adapter{values: values}
}

func (a *adapter) GetString(key string) string { return a.values[key] }
func (a *adapter) IsSet(key string) bool       { _, ok := a.values[key]; return ok }

var _ fmt.Stringer = (*adapter)(nil)

func (a *adapter) String() string { return fmt.Sprintf("config.adapter(%d keys)", len(a.values)) }

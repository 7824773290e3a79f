/*
Command dafset drives the layout scheduler end to end: load
configuration, parse the three column sources, schedule fragments, and
write the assembled TeX source (and, once rendered, its PDF) to the
output directory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/cursor"
	"github.com/dafset/dafset/engine/document"
	"github.com/dafset/dafset/engine/oracle"
	"github.com/dafset/dafset/engine/scheduler"
	"github.com/dafset/dafset/input/markdown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "dafset",
		Usage:           "typeset a Talmud-style multi-column page layout from Markdown sources",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Required: true, Usage: "load configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: ".", Usage: "write dafset.tex (and dafset.pdf, once rendered) into `DIR`"},
			&cli.StringFlag{Name: "engine", Value: "xelatex", Usage: "rendering engine binary used to measure and typeset pages"},
			&cli.BoolFlag{Name: "log", Usage: "dump the TeX source and engine log of a failed render to logs/"},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		core.UserError(err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.core":      "Info",
		"trace.engine":    "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EConfigParse, "cannot configure tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.Bool("log") {
		cfg.Log = true
	}

	left, center, right, err := markdown.Streams(cfg.Source)
	if err != nil {
		return err
	}

	outDir := cmd.String("out")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return core.WrapError(err, core.ERawTextRead, "cannot create output directory %s", outDir)
	}

	workDir, err := os.MkdirTemp("", "dafset-work-")
	if err != nil {
		return core.WrapError(err, core.ERenderFailed, "cannot create scratch directory")
	}
	defer os.RemoveAll(workDir)

	logDir := ""
	if cfg.Log {
		logDir = filepath.Join(outDir, "logs")
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return core.WrapError(err, core.ERawTextRead, "cannot create log directory %s", logDir)
		}
	}

	renderer := &oracle.TeXRenderer{
		EngineBinary: cmd.String("engine"),
		WorkDir:      workDir,
		LogDir:       logDir,
	}
	shaper := oracle.GlypherShaper{}

	preamble := document.Preamble(cfg)

	sched := scheduler.New(
		cursor.New(left, cfg.Left),
		cursor.New(center, cfg.Center),
		cursor.New(right, cfg.Right),
		shaper, renderer, cfg, preamble,
	)

	fragments, err := sched.Run()
	if err != nil {
		return err
	}

	tex := document.Assemble(preamble, fragments)

	texPath := filepath.Join(outDir, "dafset.tex")
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return core.WrapError(err, core.ERenderFailed, "cannot write %s", texPath)
	}

	pdf, renderErr := renderer.Render(tex)
	if renderErr != nil {
		fmt.Fprintf(os.Stderr, "wrote %s; final render failed, see log\n", texPath)
		return renderErr
	}
	pdfPath := filepath.Join(outDir, "dafset.pdf")
	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return core.WrapError(err, core.ERenderFailed, "cannot write %s", pdfPath)
	}

	fmt.Printf("wrote %s and %s (%d fragments, %d+%d+%d words)\n",
		texPath, pdfPath, len(fragments), len(left), len(center), len(right))
	return nil
}

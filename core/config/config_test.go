package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/config"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestLoadInlineSourceText(t *testing.T) {
	yaml := `
app-key: dafset-test
paper:
  width: 210mm
  height: 297mm
fonts:
  left:
    path: fonts
    command: \leftfont
  center:
    path: fonts
    command: \centerfont
  right:
    path: fonts
    command: \rightfont
source:
  left-text: "left column"
  center-text: "center column"
  right-text: "right column"
title: "My Document"
`
	path := writeTemp(t, "config.yaml", yaml)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.Left != "left column" || cfg.Source.Center != "center column" || cfg.Source.Right != "right column" {
		t.Errorf("Source = %+v", cfg.Source)
	}
	if cfg.Title != "My Document" {
		t.Errorf("Title = %q, want %q", cfg.Title, "My Document")
	}
	if cfg.Left.Command != `\leftfont` {
		t.Errorf("Left.Command = %q", cfg.Left.Command)
	}
}

func TestLoadPerColumnFiles(t *testing.T) {
	leftPath := writeTemp(t, "left.md", "left content")
	centerPath := writeTemp(t, "center.md", "center content")
	rightPath := writeTemp(t, "right.md", "right content")

	yaml := `
fonts:
  left: {command: "\\l"}
  center: {command: "\\c"}
  right: {command: "\\r"}
source:
  left-file: "` + leftPath + `"
  center-file: "` + centerPath + `"
  right-file: "` + rightPath + `"
`
	path := writeTemp(t, "config.yaml", yaml)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.Left != "left content" || cfg.Source.Center != "center content" || cfg.Source.Right != "right content" {
		t.Errorf("Source = %+v", cfg.Source)
	}
}

func TestLoadSingleFileThreeParagraphs(t *testing.T) {
	sourcePath := writeTemp(t, "source.md", "left para\n\ncenter para\n\nright para")
	yaml := `
fonts:
  left: {command: "\\l"}
  center: {command: "\\c"}
  right: {command: "\\r"}
source:
  file: "` + sourcePath + `"
`
	path := writeTemp(t, "config.yaml", yaml)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Source.Left != "left para" {
		t.Errorf("Source.Left = %q, want %q", cfg.Source.Left, "left para")
	}
	if cfg.Source.Center != "center para" {
		t.Errorf("Source.Center = %q, want %q", cfg.Source.Center, "center para")
	}
	if cfg.Source.Right != "right para" {
		t.Errorf("Source.Right = %q, want %q", cfg.Source.Right, "right para")
	}
}

func TestLoadSingleFileWrongParagraphCountErrors(t *testing.T) {
	sourcePath := writeTemp(t, "source.md", "only one paragraph, no blank lines here")
	yaml := `
fonts:
  left: {command: "\\l"}
  center: {command: "\\c"}
  right: {command: "\\r"}
source:
  file: "` + sourcePath + `"
`
	path := writeTemp(t, "config.yaml", yaml)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected an error for a single-paragraph source file")
	}
	if core.Code(err) != core.ENumberOfParagraphs {
		t.Errorf("Code = %d, want ENumberOfParagraphs", core.Code(err))
	}
}

func TestLoadDefaultsAppliedWhenUnset(t *testing.T) {
	yaml := `
fonts:
  left: {command: "\\l"}
  center: {command: "\\c"}
  right: {command: "\\r"}
source:
  left-text: "l"
  center-text: "c"
  right-text: "r"
`
	path := writeTemp(t, "config.yaml", yaml)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PaperWidth == 0 || cfg.PaperHeight == 0 {
		t.Error("unset paper dimensions should fall back to DIN A4 defaults, not zero")
	}
	if cfg.Metrics.Size == 0 {
		t.Error("unset font size should fall back to its default, not zero")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if core.Code(err) != core.ERawTextRead {
		t.Errorf("Code = %d, want ERawTextRead", core.Code(err))
	}
}

func TestLoadMalformedDimensionErrors(t *testing.T) {
	yaml := `
paper:
  width: "not-a-dimension"
fonts:
  left: {command: "\\l"}
  center: {command: "\\c"}
  right: {command: "\\r"}
source:
  left-text: "l"
  center-text: "c"
  right-text: "r"
`
	path := writeTemp(t, "config.yaml", yaml)
	_, err := config.Load(path)
	if err == nil {
		t.Fatal("expected an error for a malformed paper width")
	}
	if core.Code(err) != core.EConfigParse {
		t.Errorf("Code = %d, want EConfigParse", core.Code(err))
	}
}

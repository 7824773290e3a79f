package style_test

import (
	"testing"

	"github.com/dafset/dafset/engine/style"
	"github.com/dafset/dafset/engine/word"
)

func TestTransitionOpensAndCloses(t *testing.T) {
	cases := []struct {
		from, to           word.Style
		wantSuffix, wantPrefix string
	}{
		{word.Regular, word.Bold, "", `\textbf{`},
		{word.Bold, word.Italic, "}", `\textit{`},
		{word.Italic, word.Bold, "}", `\textbf{`},
		{word.Bold, word.BoldItalic, "}", `\textit{\textbf{`},
		{word.Italic, word.BoldItalic, "", `\textbf{`},
		{word.BoldItalic, word.Bold, "}}", `\textbf{`},
		{word.BoldItalic, word.Regular, "}}", ""},
		{word.Regular, word.Regular, "", ""},
	}
	for _, c := range cases {
		suffix, prefix := style.Transition(c.from, c.to)
		if suffix != c.wantSuffix || prefix != c.wantPrefix {
			t.Errorf("Transition(%s,%s) = (%q,%q), want (%q,%q)",
				c.from, c.to, suffix, prefix, c.wantSuffix, c.wantPrefix)
		}
	}
}

func TestCloseClosesEveryOpenGroup(t *testing.T) {
	if got := style.Close(word.BoldItalic); got != "}}" {
		t.Errorf("Close(BoldItalic) = %q, want \"}}\"", got)
	}
	if got := style.Close(word.Regular); got != "" {
		t.Errorf("Close(Regular) = %q, want \"\"", got)
	}
}

// TestS3StyleTransitions reproduces the worked example from spec §8 S3:
// "**bold** *italic* ***bold and italic*** **bold**" must render with
// Italic as the outer group and Bold nesting inside it.
func TestS3StyleTransitions(t *testing.T) {
	seq := []word.Style{word.Bold, word.Italic, word.BoldItalic, word.Bold}
	cur := word.Regular
	var got string
	for _, s := range seq {
		suffix, prefix := style.Transition(cur, s)
		got += suffix + prefix
		cur = s
	}
	got += style.Close(cur)
	want := `\textbf{}\textit{\textbf{}}\textbf{}`
	if got != want {
		t.Errorf("accumulated transitions = %q, want %q", got, want)
	}
}

package style_test

import (
	"testing"

	"github.com/dafset/dafset/engine/style"
)

func TestSanitizeEscapesSpecialChars(t *testing.T) {
	got := style.Sanitize("50% off #1 A&B x_y")
	want := `50\% off \#1 A\&B x\_y`
	if got != want {
		t.Errorf("Sanitize = %q, want %q", got, want)
	}
}

func TestSanitizeTilde(t *testing.T) {
	if got := style.Sanitize("x~y"); got != `x$\sim$y` {
		t.Errorf("Sanitize(tilde) = %q", got)
	}
}

func TestSanitizeAngleBrackets(t *testing.T) {
	if got := style.Sanitize("a<b>c"); got != `a\textlessb\textgreaterc` {
		t.Errorf("Sanitize(angles) = %q", got)
	}
}

func TestSanitizeStraightQuotes(t *testing.T) {
	got := style.Sanitize(`say "hello" now`)
	want := "say ``hello'' now"
	if got != want {
		t.Errorf("Sanitize(quotes) = %q, want %q", got, want)
	}
}

func TestSanitizeSmartQuotes(t *testing.T) {
	got := style.Sanitize("say “hello” now")
	want := "say ``hello'' now"
	if got != want {
		t.Errorf("Sanitize(smart quotes) = %q, want %q", got, want)
	}
}

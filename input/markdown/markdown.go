/*
Package markdown turns the three raw column sources into word.Streams
(spec §6 "Markdown-to-WordStream contract"): emphasis and strong become
italic/bold style transitions (combined via word.Style.Combine), and a
backtick-delimited span marks a run of words as marginalia rather than
body text.

Backtick spans are split out of the source before handing each segment
to blackfriday, rather than relying on blackfriday's own code-span
node: a margin span's content is still Markdown (spec worked example S4
shows emphasis nested inside one), and a literal code span node's text
is never re-parsed for inline markup.

*/
package markdown

import (
	"fmt"
	"regexp"
	"strings"

	bf "github.com/russross/blackfriday/v2"

	"github.com/dafset/dafset/core"
	"github.com/dafset/dafset/core/config"
	"github.com/dafset/dafset/engine/word"
)

// marginSpan matches a backtick-delimited run of text (spec §6, worked
// example S4).
var marginSpan = regexp.MustCompile("`([^`]*)`")

// Streams parses all three configured column sources into word streams
// in one pass, recovering from any blackfriday parser panic as
// core.EParseFailed rather than propagating it (spec §7).
func Streams(src config.SourceText) (left, center, right word.Stream, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = core.WrapError(fmt.Errorf("%v", r), core.EParseFailed, "markdown parser panicked: %v", r)
		}
	}()
	left, err = Parse(src.Left)
	if err != nil {
		return
	}
	center, err = Parse(src.Center)
	if err != nil {
		return
	}
	right, err = Parse(src.Right)
	return
}

// Parse turns one column's raw Markdown source into a word.Stream. The
// source is split on backtick-delimited margin spans first; each
// resulting segment — margin or body — is then parsed independently
// through blackfriday's inline AST, so style markers resolve correctly
// whether or not they fall inside a margin span.
func Parse(source string) (word.Stream, error) {
	var stream word.Stream
	pos := 0
	for _, loc := range marginSpan.FindAllStringSubmatchIndex(source, -1) {
		if loc[0] > pos {
			stream = append(stream, parseSegment(source[pos:loc[0]], word.Body)...)
		}
		stream = append(stream, parseSegment(source[loc[2]:loc[3]], word.Margin)...)
		pos = loc[1]
	}
	if pos < len(source) {
		stream = append(stream, parseSegment(source[pos:], word.Body)...)
	}
	return stream, nil
}

// parseSegment runs blackfriday's AST over one segment of plain
// Markdown and flattens it into Words tagged with position (fixed for
// the whole segment) and style (tracked per-node via an emphasis/strong
// depth counter, spec §6 combining rule).
func parseSegment(text string, pos word.Position) word.Stream {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parser := bf.New(bf.WithExtensions(bf.CommonExtensions))
	root := parser.Parse([]byte(text))

	var stream word.Stream
	bold, italic := 0, 0
	currentStyle := func() word.Style {
		s := word.Regular
		if bold > 0 {
			s = s.Combine(word.Bold)
		}
		if italic > 0 {
			s = s.Combine(word.Italic)
		}
		return s
	}

	root.Walk(func(n *bf.Node, entering bool) bf.WalkStatus {
		switch n.Type {
		case bf.Strong:
			if entering {
				bold++
			} else {
				bold--
			}
		case bf.Emph:
			if entering {
				italic++
			} else {
				italic--
			}
		case bf.Text:
			if entering {
				for _, w := range strings.Fields(string(n.Literal)) {
					stream = append(stream, word.Word{Text: w, Style: currentStyle(), Position: pos})
				}
			}
		case bf.Code:
			if entering {
				for _, w := range strings.Fields(string(n.Literal)) {
					stream = append(stream, word.Word{Text: w, Style: currentStyle(), Position: pos})
				}
			}
		}
		return bf.GoToNext
	})
	return stream
}

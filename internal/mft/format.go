package mft

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// formatSpan matches doubled braces and single {expr} spans.
var formatSpan = regexp2.MustCompile(`\{\{|\}\}|\{(?<expr>[^{}]*)\}`, regexp2.None)

// SplitFormat splits an unescaped string into literal and interpolated
// segments. {{ and }} stand for literal braces. A span that does not parse
// as an expression turns the rest of the string into literal text.
// Adjacent literal pieces are merged into one segment.
func SplitFormat(text string) []Segment {
	var segs []Segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Text: lit.String()})
			lit.Reset()
		}
	}

	// regexp2 reports match offsets in runes
	runes := []rune(text)
	pos := 0
	m, err := formatSpan.FindStringMatch(text)
	for err == nil && m != nil {
		lit.WriteString(string(runes[pos:m.Index]))
		pos = m.Index + m.Length

		switch m.String() {
		case "{{":
			lit.WriteByte('{')
		case "}}":
			lit.WriteByte('}')
		default:
			src := strings.TrimSpace(m.GroupByName("expr").String())
			x, perr := ParseExpression("", src)
			if perr != nil {
				pos = m.Index
				m = nil
				continue
			}
			flush()
			segs = append(segs, Segment{Expr: x})
		}
		m, err = formatSpan.FindNextMatch(m)
	}
	lit.WriteString(string(runes[pos:]))
	flush()
	return segs
}

// hasInterpolation reports whether any segment embeds an expression.
func hasInterpolation(segs []Segment) bool {
	for _, seg := range segs {
		if seg.Expr != nil {
			return true
		}
	}
	return false
}

// joinText concatenates the literal text of segments.
func joinText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

package token

// Span is the source location of a token.
type Span struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Start  int // rune offset in the input
	End    int // exclusive end offset
}

// IsZero reports whether the span carries no position, which marks
// synthesized tokens.
func (s Span) IsZero() bool {
	return s == Span{}
}

// MergeSpan returns the smallest span covering both a and b.
// A zero span on either side yields the other unchanged.
func MergeSpan(a, b Span) Span {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	merged := a
	if b.Start < merged.Start {
		merged.Start = b.Start
		merged.Line = b.Line
		merged.Column = b.Column
	}
	if b.End > merged.End {
		merged.End = b.End
	}
	return merged
}

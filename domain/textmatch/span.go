package textmatch

// Span is a half-open range [Start, End) of rune offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Overlaps reports whether the two ranges intersect. Adjacent spans do not.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && s.End > other.Start
}

// SpanSet accumulates claimed ranges.
type SpanSet struct {
	spans []Span
}

// Overlaps reports whether span intersects any claimed range.
func (s *SpanSet) Overlaps(span Span) bool {
	for _, claimed := range s.spans {
		if claimed.Overlaps(span) {
			return true
		}
	}
	return false
}

// Claim records span unless it intersects an existing range. It reports
// whether the span was recorded.
func (s *SpanSet) Claim(span Span) bool {
	if s.Overlaps(span) {
		return false
	}
	s.spans = append(s.spans, span)
	return true
}

// Len returns the number of claimed spans.
func (s *SpanSet) Len() int {
	return len(s.spans)
}

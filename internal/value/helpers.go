package value

import (
	"fmt"
	"time"
)

// NewRecord builds a record, rejecting mismatched column and value counts.
func NewRecord(cols []string, vals []Value, span Span) (Record, error) {
	if len(cols) != len(vals) {
		return Record{}, fmt.Errorf("record has %d columns but %d values", len(cols), len(vals))
	}
	return Record{Cols: cols, Vals: vals, Span: span}, nil
}

// StringMember creates a field selector.
func StringMember(name string, span Span) PathMember {
	return PathMember{Name: name, Span: span}
}

// IntMember creates an index selector.
func IntMember(index int, span Span) PathMember {
	return PathMember{Index: index, IsIndex: true, Span: span}
}

// String renders the date as "2006-01-02 15:04:05 -07:00". Sub-second
// precision is printed in groups of three digits and only when present.
func (d Date) String() string {
	t := d.Val
	var frac string
	switch ns := t.Nanosecond(); {
	case ns == 0:
	case ns%1_000_000 == 0:
		frac = fmt.Sprintf(".%03d", ns/1_000_000)
	case ns%1_000 == 0:
		frac = fmt.Sprintf(".%06d", ns/1_000)
	default:
		frac = fmt.Sprintf(".%09d", ns)
	}
	return t.Format("2006-01-02 15:04:05") + frac + t.Format(" -07:00")
}

// NewDuration converts d to a duration value.
func NewDuration(d time.Duration, span Span) Duration {
	return Duration{Val: int64(d), Span: span}
}

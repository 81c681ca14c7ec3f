package data

import "strings"

// ListFilters narrows the result of BookService.List. Nil flags and an empty
// Name mean "not supplied". Supplied filters are combined with AND.
type ListFilters struct {
	Reading  *bool
	Finished *bool
	Name     string
}

// Match reports whether b satisfies every supplied filter. It is evaluated
// against the full stored record, never against the list projection.
func (f ListFilters) Match(b Book) bool {
	if f.Reading != nil && b.Reading != *f.Reading {
		return false
	}
	if f.Finished != nil && b.Finished != *f.Finished {
		return false
	}
	if f.Name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(f.Name)) {
		return false
	}
	return true
}

// ParseFlag decodes the "0"/"1" query encoding of a boolean filter.
// ok is false for any other value, including the empty string.
func ParseFlag(s string) (value *bool, ok bool) {
	var b bool
	switch s {
	case "1":
		b = true
	case "0":
		b = false
	default:
		return nil, false
	}
	return &b, true
}

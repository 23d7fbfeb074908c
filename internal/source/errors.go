package source

import "fmt"

// NetworkError means the upstream endpoint was unreachable or timed out.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FormatError means a response arrived but does not match the expected shape.
type FormatError struct {
	URL    string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected format from %s: %s", e.URL, e.Reason)
}

// ParseError means a single field of a single row could not be parsed. It is
// non-fatal: the row is skipped and counted, never merged with a default.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s %q", e.Field, e.Value)
}

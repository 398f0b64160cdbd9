package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// RequestMarker is what a request must contain to carry a command.
const RequestMarker = "GET /?"

var (
	ErrMissingParam = errors.New("missing parameter")
	ErrNotNumeric   = errors.New("parameter is not numeric")
)

type Status int

const (
	// Absent means the request carries no command.
	Absent Status = iota
	// Present means the request carries a well formed command.
	Present
	// Malformed means a command was sent but could not be extracted.
	Malformed
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Query is the command extracted from one request. Values are raw, no
// percent-decoding is applied.
type Query struct {
	Status    Status
	Params    map[string]string
	Malformed []string
	Err       error
}

// Parse extracts query parameters from the raw text received for one
// connection. The text may be truncated.
func Parse(raw string) Query {
	start := strings.Index(raw, RequestMarker)
	if start < 0 {
		return Query{Status: Absent}
	}

	// The target is read from the marker on, so blank lines before the
	// request line do not hide it.
	line, _, _ := strings.Cut(raw[start+len("GET "):], "\n")
	target, _, _ := strings.Cut(strings.TrimSpace(line), " ")
	_, rawQuery, found := strings.Cut(target, "?")
	if !found || rawQuery == "" {
		return Query{Status: Absent}
	}

	q := Query{Status: Present, Params: map[string]string{}}
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			q.Malformed = append(q.Malformed, pair)
			continue
		}
		if _, exists := q.Params[key]; exists {
			continue
		}
		q.Params[key] = value
	}
	if len(q.Params) == 0 {
		q.Status = Malformed
		q.Err = fmt.Errorf("%w: %q", ErrMissingParam, rawQuery)
	}
	return q
}

func (q Query) Has(key string) bool {
	_, ok := q.Params[key]
	return ok
}

func (q Query) Get(key string) (string, bool) {
	v, ok := q.Params[key]
	return v, ok
}

// Int returns the numeric value of key. ok is false when the key is absent.
func (q Query) Int(key string) (int, bool, error) {
	v, ok := q.Params[key]
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s=%q", ErrNotNumeric, key, v)
	}
	return n, true, nil
}

// isMalformedKey reports whether key was sent without a value.
func (q Query) isMalformedKey(key string) bool {
	return lo.Contains(q.Malformed, key)
}

package headers

import (
	"strings"
)

// Headers maps header names to values. Names keep the case they were
// received with; lookups are exact.
type Headers map[string]string

// A header line is "<name>: <value>". The name is everything before the
// first colon-space pair.
const fieldSeparator = ": "

func NewHeaders() Headers { return Headers{} }

func (h Headers) Get(name string) string {
	return h[name]
}

// Set stores value under name, replacing any previous value.
func (h Headers) Set(name, value string) {
	h[name] = value
}

// ParseLine adds a single header line to h. Lines that are not of the
// form "Name: Value" are skipped and reported as false. A repeated name
// keeps the last value seen.
func (h Headers) ParseLine(line string) bool {
	line = strings.TrimSuffix(line, "\r")

	name, value, ok := strings.Cut(line, fieldSeparator)
	if !ok {
		return false
	}
	// Names never contain whitespace; a line like "Bad Name: v" is noise.
	if name == "" || strings.ContainsAny(name, " \t") {
		return false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	h.Set(name, value)
	return true
}

// Parse consumes header lines until the first blank line and returns how
// many lines it consumed, the blank one included.
func (h Headers) Parse(lines []string) int {
	for i, line := range lines {
		if strings.TrimSuffix(line, "\r") == "" {
			return i + 1
		}
		h.ParseLine(line)
	}
	return len(lines)
}

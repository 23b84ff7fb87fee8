package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	// Test: Valid single header
	h := NewHeaders()
	require.True(t, h.ParseLine("Host: localhost:3000"))
	assert.Equal(t, "localhost:3000", h.Get("Host"))

	// Keys are case-sensitive as received
	assert.Equal(t, "", h.Get("host"))

	// Value keeps its inner spaces
	h = NewHeaders()
	require.True(t, h.ParseLine("User-Agent: Mozilla/5.0 (X11; Linux x86_64)"))
	assert.Equal(t, "Mozilla/5.0 (X11; Linux x86_64)", h.Get("User-Agent"))

	// Trailing CR is dropped
	h = NewHeaders()
	require.True(t, h.ParseLine("Accept: */*\r"))
	assert.Equal(t, "*/*", h.Get("Accept"))

	// Repeated header => last one wins
	h = NewHeaders()
	h.ParseLine("X-Person: some1")
	h.ParseLine("X-Person: some2")
	assert.Equal(t, "some2", h.Get("X-Person"))
}

func TestParseLineSkipsMalformed(t *testing.T) {
	cases := []string{
		"",
		"Host",
		"Host:localhost",
		": value",
		"Bad Name: value",
		"Host:    ",
	}
	for _, line := range cases {
		h := NewHeaders()
		assert.False(t, h.ParseLine(line), "line %q", line)
		assert.Empty(t, h, "line %q", line)
	}
}

func TestParseStopsAtBlankLine(t *testing.T) {
	h := NewHeaders()
	lines := []string{"Host: h", "garbage", "User-Agent: u", "", "Body: ignored"}
	n := h.Parse(lines)
	assert.Equal(t, 4, n)
	assert.Equal(t, Headers{"Host": "h", "User-Agent": "u"}, h)

	// No terminator: every line consumed
	h = NewHeaders()
	n = h.Parse([]string{"Host: h"})
	assert.Equal(t, 1, n)
	assert.Equal(t, "h", h.Get("Host"))

	// CRLF blank line also terminates
	h = NewHeaders()
	n = h.Parse([]string{"Host: h\r", "\r", "Late: x"})
	assert.Equal(t, 2, n)
	assert.Len(t, h, 1)
}

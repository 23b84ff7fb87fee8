package request

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"capture/internal/headers"
)

// Request is one parsed request. It is built once per connection and
// never modified afterwards.
type Request struct {
	RequestLine *RequestLine
	Headers     headers.Headers
}

// RequestLine represents the three components of a request line:
//
//	<method> <request-target> <protocol-version>
type RequestLine struct {
	Method        Method
	RequestTarget string
	HTTPVersion   string
}

type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodPut
	MethodDelete
)

var MethodName = map[Method]string{
	MethodUnknown: "UNKNOWN",
	MethodGet:     "GET",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
}

// Verbs are matched exactly; "get" is not GET.
var methodByVerb = map[string]Method{
	"GET":    MethodGet,
	"POST":   MethodPost,
	"PUT":    MethodPut,
	"DELETE": MethodDelete,
}

func (m Method) String() string {
	if name, ok := MethodName[m]; ok {
		return name
	}
	return MethodName[MethodUnknown]
}

func ParseMethod(verb string) Method {
	return methodByVerb[verb]
}

var ErrMalformedRequestLine = errors.New("malformed request-line")

// Requests are read with a single call into a buffer of this size.
const DefaultReadSize = 2048

// Lines end in a bare "\n". A trailing "\r" is tolerated and stripped.
const lineSeparator = "\n"

// Parse turns the raw text of a request into a Request. Only the request
// line and header block are looked at; anything after the first blank
// line is ignored.
func Parse(raw string) (*Request, error) {
	lines := strings.Split(raw, lineSeparator)

	rl, err := ParseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	h := headers.NewHeaders()
	h.Parse(lines[1:])

	return &Request{
		RequestLine: rl,
		Headers:     h,
	}, nil
}

// ParseRequestLine splits line on whitespace. It needs at least three
// tokens; any beyond the third are ignored. An unrecognised verb is not an
// error, it yields MethodUnknown.
func ParseRequestLine(line string) (*RequestLine, error) {
	tokens := strings.Fields(strings.TrimSuffix(line, "\r"))
	if len(tokens) < 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	return &RequestLine{
		Method:        ParseMethod(tokens[0]),
		RequestTarget: tokens[1],
		HTTPVersion:   tokens[2],
	}, nil
}

// FromReader performs exactly one Read of at most size bytes from r and
// parses whatever arrived. There is no attempt to accumulate a request
// that spans several reads.
func FromReader(r io.Reader, size int) (*Request, error) {
	if size <= 0 {
		size = DefaultReadSize
	}
	buf := make([]byte, size)

	n, err := r.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read request: %w", err)
	}

	return Parse(string(buf[:n]))
}

package response

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"capture/internal/headers"
)

const httpVersion = "HTTP/1.1"

// Lines are terminated with a bare "\n", not CRLF. The capture client and
// this server agree on that; strict HTTP clients may not.
const lineTerminator = "\n"

// Headers that are always emitted first, in this order.
var headerOrder = []string{"content-type", "content-length"}

// GetDefaultHeaders returns the header block of every response.
// Keys are stored lowercase and title-cased on the way out.
func GetDefaultHeaders(contentType string, contentLen int) headers.Headers {
	h := headers.NewHeaders()
	h.Set("content-type", contentType)
	h.Set("content-length", strconv.Itoa(contentLen))
	return h
}

type WriterStatus int

const (
	WritingStatusLine WriterStatus = iota + 1
	WritingHeaders
	WritingBody
	WritingDone
)

var WriterStatusName = map[WriterStatus]string{
	WritingStatusLine: "WRITING_STATUS_LINE",
	WritingHeaders:    "WRITING_HEADERS",
	WritingBody:       "WRITING_BODY",
	WritingDone:       "WRITING_DONE",
}

// Writer emits the parts of a response strictly in order.
type Writer struct {
	writer       io.Writer
	WriterStatus WriterStatus
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: w, WriterStatus: WritingStatusLine}
}

func (w *Writer) expect(s WriterStatus) error {
	if w.WriterStatus != s {
		return fmt.Errorf("writer out of order: want %s, at %s",
			WriterStatusName[s], WriterStatusName[w.WriterStatus])
	}
	return nil
}

func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if err := w.expect(WritingStatusLine); err != nil {
		return err
	}
	reason, ok := StatusCodeName[statusCode]
	if !ok {
		reason = "Unknown"
	}
	if _, err := fmt.Fprintf(w.writer, "%s %d %s%s", httpVersion, int(statusCode), reason, lineTerminator); err != nil {
		return err
	}
	w.WriterStatus = WritingHeaders
	return nil
}

func (w *Writer) WriteHeaders(h headers.Headers) error {
	if err := w.expect(WritingHeaders); err != nil {
		return err
	}

	keys := make([]string, 0, len(h))
	for _, k := range headerOrder {
		if _, ok := h[k]; ok {
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range h {
		if !slices.Contains(headerOrder, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	keys = append(keys, rest...)

	caser := cases.Title(language.English)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w.writer, "%s: %s%s", caser.String(k), h.Get(k), lineTerminator); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w.writer, lineTerminator); err != nil {
		return err
	}
	w.WriterStatus = WritingBody
	return nil
}

func (w *Writer) WriteBody(b Body) (int64, error) {
	if err := w.expect(WritingBody); err != nil {
		return 0, err
	}
	n, err := b.WriteTo(w.writer)
	if err != nil {
		return n, err
	}
	w.WriterStatus = WritingDone
	return n, nil
}

package response

import (
	"io"

	"capture/internal/webroot"
)

type StatusCode int

const (
	OK                    StatusCode = 200
	NOT_FOUND             StatusCode = 404
	INTERNAL_SERVER_ERROR StatusCode = 500
)

var StatusCodeName = map[StatusCode]string{
	OK:                    "OK",
	NOT_FOUND:             "Not Found",
	INTERNAL_SERVER_ERROR: "Internal Server Error",
}

const (
	ContentTypeHTML     = "text/html"
	ContentTypeManifest = "application/x-mpegURL"
	ContentTypeMP4      = "video/mp4"
)

var contentTypeByExt = map[string]string{
	"m3u8": ContentTypeManifest,
	"mp4":  ContentTypeMP4,
}

// ContentType maps a file extension (without the dot) to a media type.
// Anything unrecognised is served as HTML.
func ContentType(ext string) string {
	if ct, ok := contentTypeByExt[ext]; ok {
		return ct
	}
	return ContentTypeHTML
}

type BodyKind int

const (
	BodyBytes BodyKind = iota
	BodyText
)

// Body holds either raw file bytes or page text, never both.
type Body struct {
	kind  BodyKind
	bytes []byte
	text  string
}

func BytesBody(b []byte) Body { return Body{kind: BodyBytes, bytes: b} }
func TextBody(s string) Body  { return Body{kind: BodyText, text: s} }

func (b Body) Kind() BodyKind { return b.kind }

// Len is the number of bytes WriteTo will produce.
func (b Body) Len() int {
	if b.kind == BodyText {
		return len(b.text)
	}
	return len(b.bytes)
}

// WriteTo writes the body unmodified.
func (b Body) WriteTo(w io.Writer) (int64, error) {
	var (
		n   int
		err error
	)
	switch b.kind {
	case BodyText:
		n, err = io.WriteString(w, b.text)
	default:
		n, err = w.Write(b.bytes)
	}
	return int64(n), err
}

// Response is built once per request and discarded after it is written.
type Response struct {
	Status        StatusCode
	ContentType   string
	ContentLength int
	Body          Body
}

// Build turns a resolved target into the response that answers it.
// NotFound and ReadError answer with an empty body.
func Build(res webroot.Resolution) *Response {
	var (
		status = OK
		ct     = ContentTypeHTML
		body   = BytesBody(nil)
	)

	switch res.Kind {
	case webroot.Bootstrap:
		body = TextBody(webroot.BootstrapPage)
	case webroot.Found:
		ct = ContentType(res.Ext)
		body = BytesBody(res.Data)
	case webroot.NotFound:
		status = NOT_FOUND
	default:
		status = INTERNAL_SERVER_ERROR
	}

	return &Response{
		Status:        status,
		ContentType:   ct,
		ContentLength: body.Len(),
		Body:          body,
	}
}

// Write serializes r onto w: status line, headers, blank line, body.
func (r *Response) Write(w io.Writer) error {
	rw := NewWriter(w)
	if err := rw.WriteStatusLine(r.Status); err != nil {
		return err
	}
	if err := rw.WriteHeaders(GetDefaultHeaders(r.ContentType, r.ContentLength)); err != nil {
		return err
	}
	_, err := rw.WriteBody(r.Body)
	return err
}

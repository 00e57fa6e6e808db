package http

import (
	"strconv"

	"tinyhttp/application/http/status"
	"tinyhttp/lib/ds/buffer"
)

const Protocol = "HTTP/1.1"

const (
	MethodGet     = "GET"
	MethodHead    = "HEAD"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodConnect = "CONNECT"
	MethodOptions = "OPTIONS"
	MethodTrace   = "TRACE"
	MethodPatch   = "PATCH"
)

const headerTextCap = 128

type Request struct {
	Method   string
	Target   string
	Protocol string

	Headers Headers
	Body    []byte
}

func NewRequest() *Request {
	return &Request{Headers: NewHeaders(0)}
}

// SetStatusLine sets method and target. Protocol is always [Protocol].
func (r *Request) SetStatusLine(method, target string) {
	r.Method = method
	r.Target = target
	r.Protocol = Protocol
}

func (r *Request) AddHeader(key, value string) { r.Headers.Add(key, value) }

// SetBody copies body into the request and adds Content-Length for it.
func (r *Request) SetBody(body []byte) {
	r.Headers.Add("Content-Length", strconv.Itoa(len(body)))
	r.Body = cloneBody(body)
}

// HeaderText serializes request line and headers, ending with an empty line.
// Body is not included.
func (r *Request) HeaderText() []byte {
	b := buffer.New(headerTextCap)
	b.Writef("%s %s %s\r\n", r.Method, r.Target, r.Protocol)
	writeFields(b, r.Headers)
	return b.Bytes()
}

type Response struct {
	Protocol     string
	StatusCode   uint16
	ReasonPhrase string

	Headers Headers
	Body    []byte
}

// NewResponse creates a response with [Protocol] set and status unset.
func NewResponse() *Response {
	return &Response{Protocol: Protocol, Headers: NewHeaders(0)}
}

func (r *Response) SetStatusLine(code uint16, reasonPhrase string) {
	r.StatusCode = code
	r.ReasonPhrase = reasonPhrase
}

func (r *Response) SetStatus(s status.Status) { r.SetStatusLine(s.Code, s.ReasonPhrase) }

func (r *Response) AddHeader(key, value string) { r.Headers.Add(key, value) }

// SetBody copies body into the response and adds Content-Length for it.
func (r *Response) SetBody(body []byte) {
	r.Headers.Add("Content-Length", strconv.Itoa(len(body)))
	r.Body = cloneBody(body)
}

// HeaderText serializes status line and headers, ending with an empty line.
// Body is not included.
func (r *Response) HeaderText() []byte {
	b := buffer.New(headerTextCap)
	b.Writef("%s %d %s\r\n", r.Protocol, r.StatusCode, r.ReasonPhrase)
	writeFields(b, r.Headers)
	return b.Bytes()
}

func writeFields(b *buffer.Buffer, h Headers) {
	for _, f := range h.fields {
		b.Writef("%s: %s\r\n", f.Name, f.Value)
	}
	_, _ = b.WriteString("\r\n")
}

func cloneBody(body []byte) []byte {
	if len(body) == 0 {
		return nil
	}
	clone := make([]byte, len(body))
	copy(clone, body)
	return clone
}

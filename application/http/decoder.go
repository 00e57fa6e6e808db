package http

import (
	"bytes"
	"strconv"
	"strings"

	"tinyhttp/application/util/rule"

	"github.com/pkg/errors"
)

type DecodeOptions struct {
	// RejectZeroContentLength treats "Content-Length: 0" as malformed headers
	// instead of an empty body.
	RejectZeroContentLength bool
}

var DefaultDecodeOptions = DecodeOptions{
	RejectZeroContentLength: false,
}

var (
	ErrMalformedStatusLine = errors.New("status line is malformed")
	ErrMalformedHeaders    = errors.New("headers are malformed")
	ErrBodyTruncated       = errors.New("body is shorter than content length")

	// ErrIncomplete is reported along with the errors above
	// when the input ended before the message did.
	ErrIncomplete = errors.New("message is incomplete")
)

var (
	errMissingCRBeforeLF     = errors.New("missing CR before LF")
	errMissingSeparator      = errors.New("missing SP separator")
	errMissingFieldSeparator = errors.New(`missing ": " separator`)
	errZeroContentLength     = errors.New("zero content length")
)

// phaseError matches both the phase it failed on and its cause.
type phaseError struct{ phase, cause error }

func (e *phaseError) Error() string        { return e.phase.Error() + ": " + e.cause.Error() }
func (e *phaseError) Is(target error) bool { return target == e.phase }
func (e *phaseError) Unwrap() error        { return e.cause }

// ParseRequest decodes a request from b.
// On error, the partially decoded request is returned with it.
func ParseRequest(b []byte, opts DecodeOptions) (*Request, error) {
	r := NewRequest()

	cur, tokens, err := scanStatusLine(b, 0)
	if err != nil {
		return r, &phaseError{ErrMalformedStatusLine, err}
	}

	r.Method, r.Target, r.Protocol = tokens[0], tokens[1], tokens[2]
	if r.Method == "" || r.Target == "" || r.Protocol == "" {
		return r, &phaseError{ErrMalformedStatusLine, errors.Errorf("empty token in request line: %q", tokens)}
	}

	if cur, err = scanHeaders(b, cur, &r.Headers); err != nil {
		return r, &phaseError{ErrMalformedHeaders, err}
	}

	r.Body, err = extractBody(b, cur, r.Headers, opts)
	return r, err
}

// ParseResponse decodes a response from b.
// On error, the partially decoded response is returned with it.
func ParseResponse(b []byte, opts DecodeOptions) (*Response, error) {
	r := NewResponse()

	cur, tokens, err := scanStatusLine(b, 0)
	if err != nil {
		return r, &phaseError{ErrMalformedStatusLine, err}
	}

	// reason-phrase can be empty, but the SP before it cannot.
	r.Protocol, r.ReasonPhrase = tokens[0], tokens[2]
	if r.Protocol == "" {
		return r, &phaseError{ErrMalformedStatusLine, errors.New("empty protocol in status line")}
	}

	r.StatusCode = parseStatusCode(tokens[1])
	if r.StatusCode == 0 {
		return r, &phaseError{ErrMalformedStatusLine, errors.Errorf("invalid status code: %q", tokens[1])}
	}

	if cur, err = scanHeaders(b, cur, &r.Headers); err != nil {
		return r, &phaseError{ErrMalformedHeaders, err}
	}

	r.Body, err = extractBody(b, cur, r.Headers, opts)
	return r, err
}

// scanLine returns the line starting at cur without its CRLF,
// and where the next line starts.
func scanLine(b []byte, cur int) (next int, line []byte, err error) {
	idx := bytes.IndexByte(b[cur:], rule.LF)
	if idx < 0 {
		return cur, nil, ErrIncomplete
	}

	end := cur + idx
	if end == cur || b[end-1] != rule.CR {
		return cur, nil, errMissingCRBeforeLF
	}

	return end + 1, b[cur : end-1], nil
}

// scanStatusLine splits the first line into three tokens.
// The first two are delimited by SP and the last one takes the rest of the line.
func scanStatusLine(b []byte, cur int) (next int, tokens [3]string, err error) {
	next, line, err := scanLine(b, cur)
	if err != nil {
		return cur, tokens, err
	}

	first, rest, found := bytes.Cut(line, []byte{rule.SP})
	if !found {
		return cur, tokens, errMissingSeparator
	}

	second, third, found := bytes.Cut(rest, []byte{rule.SP})
	if !found {
		return cur, tokens, errMissingSeparator
	}

	tokens = [3]string{string(first), string(second), string(third)}
	return next, tokens, nil
}

// scanHeaderLine reads a single field line.
// done is true when the empty line terminating headers is consumed.
func scanHeaderLine(b []byte, cur int) (next int, field Field, done bool, err error) {
	next, line, err := scanLine(b, cur)
	if err != nil {
		return cur, Field{}, false, err
	}

	if len(line) == 0 {
		return next, Field{}, true, nil
	}

	name, value, found := bytes.Cut(line, rule.FieldSeparator)
	if !found {
		return cur, Field{}, false, errors.Wrapf(errMissingFieldSeparator, "field line %q", line)
	}

	return next, Field{Name: string(name), Value: string(value)}, false, nil
}

func scanHeaders(b []byte, cur int, headers *Headers) (int, error) {
	for {
		next, field, done, err := scanHeaderLine(b, cur)
		if err != nil {
			return cur, err
		}

		cur = next
		if done {
			return cur, nil
		}

		headers.Add(field.Name, field.Value)
	}
}

// extractBody copies the body delimited by Content-Length out of b.
// Without Content-Length there's no body.
func extractBody(b []byte, cur int, headers Headers, opts DecodeOptions) ([]byte, error) {
	v, ok := headers.Get("Content-Length")
	if !ok {
		return nil, nil
	}

	length, err := strconv.ParseUint(strings.TrimSpace(v), 10, 63)
	if err != nil {
		return nil, &phaseError{ErrMalformedHeaders, errors.Wrapf(err, "invalid Content-Length %q", v)}
	}

	if length == 0 {
		if opts.RejectZeroContentLength {
			return nil, &phaseError{ErrMalformedHeaders, errZeroContentLength}
		}
		return nil, nil
	}

	remaining := uint64(len(b) - cur)
	if remaining < length {
		return cloneBody(b[cur:]), &phaseError{ErrBodyTruncated, ErrIncomplete}
	}

	return cloneBody(b[cur : cur+int(length)]), nil
}

// parseStatusCode reads leading digits of s. It returns 0 when there's no
// usable code.
func parseStatusCode(s string) uint16 {
	end := 0
	for end < len(s) && rule.IsDigit(s[end]) {
		end++
	}

	code, err := strconv.ParseUint(s[:end], 10, 16)
	if err != nil {
		return 0
	}
	return uint16(code)
}

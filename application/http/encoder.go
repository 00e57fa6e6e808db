package http

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

type MessageEncoder struct {
	bw *bufio.Writer
}

func (me *MessageEncoder) encode(header, body []byte) error {
	if _, err := me.bw.Write(header); err != nil {
		return errors.Wrap(err, "writing header")
	}

	// Body may be binary, so it goes out as-is after the header block.
	if len(body) > 0 {
		if _, err := me.bw.Write(body); err != nil {
			return errors.Wrap(err, "writing body")
		}
	}

	if err := me.bw.Flush(); err != nil {
		return errors.Wrap(err, "flushing message")
	}

	return nil
}

type RequestEncoder struct{ MessageEncoder }

func NewRequestEncoder(w io.Writer) *RequestEncoder {
	return &RequestEncoder{MessageEncoder{bw: bufio.NewWriter(w)}}
}

func (re *RequestEncoder) Encode(request *Request) error {
	if err := re.encode(request.HeaderText(), request.Body); err != nil {
		return errors.Wrap(err, "encoding request")
	}
	return nil
}

type ResponseEncoder struct{ MessageEncoder }

func NewResponseEncoder(w io.Writer) *ResponseEncoder {
	return &ResponseEncoder{MessageEncoder{bw: bufio.NewWriter(w)}}
}

func (re *ResponseEncoder) Encode(response *Response) error {
	if err := re.encode(response.HeaderText(), response.Body); err != nil {
		return errors.Wrap(err, "encoding response")
	}
	return nil
}

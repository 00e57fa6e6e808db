package iolib

import (
	"io"

	"github.com/pkg/errors"
)

// WriteFull keeps writing until buf is fully written or w returns an error.
func WriteFull(w io.Writer, buf []byte) (uint, error) {
	total := uint(0)
	for total < uint(len(buf)) {
		n, err := w.Write(buf[total:])
		total += uint(n)
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

var ErrLimitExceeded = errors.New("read limit exceeded")

// ReadAllLimit reads from r until EOF.
// If r yields more than limit bytes, it returns the first limit bytes
// with [ErrLimitExceeded]. Zero limit means no limit.
func ReadAllLimit(r io.Reader, limit uint) ([]byte, error) {
	if limit == 0 {
		return io.ReadAll(r)
	}

	return io.ReadAll(LimitReader(r, limit))
}

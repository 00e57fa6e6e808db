package iolib

import "io"

// LimitReader reads at most n bytes from r. Once those are consumed, it
// reports [ErrLimitExceeded] if r still has data, and r's own error otherwise.
func LimitReader(r io.Reader, n uint) io.Reader { return &limitedReader{r: r, n: n} }

type limitedReader struct {
	r io.Reader
	n uint // bytes remaining

	probe [1]byte
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n == 0 {
		n, err := l.r.Read(l.probe[:])
		if n > 0 {
			return 0, ErrLimitExceeded
		}
		return 0, err
	}

	if uint(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= uint(n)
	return n, err
}

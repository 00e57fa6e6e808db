package buffer

import "fmt"

const defaultCap = 32

// Buffer is an append-only byte accumulator whose capacity doubles on demand.
type Buffer struct{ underlying []byte }

func New(cap uint) *Buffer {
	if cap == 0 {
		cap = defaultCap
	}
	return &Buffer{underlying: make([]byte, 0, cap)}
}

func (b *Buffer) Len() uint { return uint(len(b.underlying)) }
func (b *Buffer) Cap() uint { return uint(cap(b.underlying)) }

// EnsureCapacity makes sure next n bytes can be appended without reallocation.
func (b *Buffer) EnsureCapacity(n uint) {
	required := b.Len() + n
	if required <= b.Cap() {
		return
	}

	newCap := b.Cap()
	if newCap == 0 {
		newCap = defaultCap
	}
	for newCap < required {
		newCap *= 2
	}

	grown := make([]byte, len(b.underlying), newCap)
	copy(grown, b.underlying)
	b.underlying = grown
}

func (b *Buffer) Write(p []byte) (n int, err error) {
	b.EnsureCapacity(uint(len(p)))
	b.underlying = append(b.underlying, p...)
	return len(p), nil
}

func (b *Buffer) WriteString(s string) (n int, err error) {
	b.EnsureCapacity(uint(len(s)))
	b.underlying = append(b.underlying, s...)
	return len(s), nil
}

func (b *Buffer) WriteByte(c byte) error {
	b.EnsureCapacity(1)
	b.underlying = append(b.underlying, c)
	return nil
}

// Writef appends formatted text.
func (b *Buffer) Writef(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	_, _ = b.WriteString(s)
}

func (b *Buffer) Reset() { b.underlying = b.underlying[:0] }

// Bytes returns a copy of accumulated content.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.underlying))
	copy(out, b.underlying)
	return out
}

func (b *Buffer) String() string { return string(b.underlying) }

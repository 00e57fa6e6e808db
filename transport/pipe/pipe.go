// Package pipe provides an in-memory [transport] whose deadlines follow a
// [clock.Clock], so that timeouts can be driven by a mock clock in tests.
package pipe

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"

	"tinyhttp/transport"

	"github.com/benbjohnson/clock"
)

// Addr names one end of a pipe.
type Addr struct {
	Name string
}

func (a Addr) Network() string { return "pipe" }
func (a Addr) String() string  { return a.Name }

// See:
// - https://github.com/golang/go/issues/24205
// - https://github.com/golang/go/issues/34502
type pipe struct {
	addr Addr

	buf *bytes.Buffer // protected by in.

	in, out  sync.Cond
	serialMu sync.Mutex // For serialized write operations.

	_closed  bool
	closedMu sync.Mutex

	rdeadLine, wdeadLine *deadline

	// the opposite pipe.
	counterpart *pipe
}

var _ transport.Conn = (*pipe)(nil)

// Pipe creates a pair of connected, buffered pipes.
// Writes block only while the counterpart's buffer is full, so bufSize MUST be more than 0.
func Pipe(name1, name2 string, clock clock.Clock, bufSize uint) (c1, c2 *pipe) {
	if bufSize == 0 {
		panic("buffer size cannot be 0")
	}

	c1 = newPipe(name1, clock, bufSize)
	c2 = newPipe(name2, clock, bufSize)
	c1.counterpart, c2.counterpart = c2, c1
	return
}

func newPipe(name string, clock clock.Clock, bufSize uint) *pipe {
	p := &pipe{
		addr:      Addr{Name: name},
		buf:       bytes.NewBuffer(make([]byte, 0, bufSize)),
		rdeadLine: newDeadLine(clock),
		wdeadLine: newDeadLine(clock),
	}
	p.in.L, p.out.L = &sync.Mutex{}, &sync.Mutex{}
	return p
}

func (p *pipe) LocalAddr() net.Addr  { return p.addr }
func (p *pipe) RemoteAddr() net.Addr { return p.counterpart.addr }

func (p *pipe) Close() error {
	p.closedMu.Lock()
	if p._closed {
		p.closedMu.Unlock()
		return transport.ErrConnClosed
	}
	p._closed = true
	p.closedMu.Unlock()

	wakeAll(&p.in)
	wakeAll(&p.out)
	wakeAll(&p.counterpart.in)
	wakeAll(&p.counterpart.out)
	return nil
}

func (p *pipe) Read(b []byte) (n int, err error) {
	defer func() {
		if n == 0 {
			return
		}
		// If buffer was full and counterpart was waiting,
		// we must notify them that it is now available to write.
		wakeAll(&p.counterpart.out)
	}()

	p.in.L.Lock()
	defer p.in.L.Unlock()

	for {
		if p.closed() {
			return 0, transport.ErrConnClosed
		}

		if p.rdeadLine.exceeded() {
			return 0, transport.ErrDeadLineExceeded
		}

		// Whatever the counterpart wrote before closing is still readable.
		if p.buf.Len() > 0 {
			return p.buf.Read(b)
		}

		if p.counterpart.closed() {
			return 0, io.EOF
		}

		// Wait until one of conditions is satisfied.
		p.in.Wait()
	}
}

func (p *pipe) Write(b []byte) (n int, err error) {
	// Serialize write operations to prevent interleaving write.
	p.serialMu.Lock()
	defer p.serialMu.Unlock()

	p.out.L.Lock()
	defer p.out.L.Unlock()

	// Ensure all the bytes are sent.
	nn := 0
	for len(b) > 0 {
		if p.closed() || p.counterpart.closed() {
			return nn, transport.ErrConnClosed
		}

		if p.wdeadLine.exceeded() {
			return nn, transport.ErrDeadLineExceeded
		}

		// It might race with counterpart's read. So acquire lock.
		p.counterpart.in.L.Lock()

		// We don't want counterpart's buffer to grow.
		remain := p.counterpart.buf.Cap() - p.counterpart.buf.Len()

		if canWrite := min(len(b), remain); canWrite > 0 {
			p.counterpart.buf.Write(b[:canWrite])
			b = b[canWrite:]
			nn += canWrite

			// Since we hold its read lock, the read resumes after we unlock.
			p.counterpart.in.Broadcast()
			p.counterpart.in.L.Unlock()
			continue
		}

		p.counterpart.in.L.Unlock()
		p.out.Wait()
	}

	return nn, nil
}

func (p *pipe) closed() bool {
	p.closedMu.Lock()
	defer p.closedMu.Unlock()

	return p._closed
}

func (p *pipe) SetReadDeadLine(t time.Time)  { p.rdeadLine.set(t, func() { wakeAll(&p.in) }) }
func (p *pipe) SetWriteDeadLine(t time.Time) { p.wdeadLine.set(t, func() { wakeAll(&p.out) }) }

// wakeAll holds c.L while broadcasting so that a waiter between its
// condition check and Wait cannot miss the wakeup.
func wakeAll(c *sync.Cond) {
	c.L.Lock()
	c.Broadcast()
	c.L.Unlock()
}

func newDeadLine(clock clock.Clock) *deadline { return &deadline{clock: clock} }

type deadline struct {
	clock clock.Clock
	m     sync.Mutex

	timer *clock.Timer
	t     time.Time
}

func (d *deadline) set(t time.Time, onExceed func()) {
	d.m.Lock()
	defer d.m.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.t = t

	if !t.IsZero() {
		// onExceed takes the cond lock, which readers hold while calling exceeded.
		// So it must run without d.m held.
		d.timer = d.clock.AfterFunc(d.clock.Until(t), onExceed)
	}
}

func (d *deadline) exceeded() bool {
	d.m.Lock()
	defer d.m.Unlock()

	if d.t.IsZero() {
		return false
	}

	return d.clock.Until(d.t) <= 0
}

package transport

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// Conn is a reliable, ordered byte stream.
//
// Read returns [io.EOF] once the counterpart has closed its side and every
// byte it sent has been consumed. Operations on a conn closed by its own
// side return [ErrConnClosed].
type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	LocalAddr() net.Addr
	RemoteAddr() net.Addr

	// Zero value of t means no deadline.
	SetReadDeadLine(t time.Time)
	SetWriteDeadLine(t time.Time)
}

type ConnListener interface {
	Accept(ctx context.Context) (Conn, error)
	Addr() net.Addr
	Close() error
}

type ConnDialer interface {
	Dial(ctx context.Context, addr netip.AddrPort) (Conn, error)
}

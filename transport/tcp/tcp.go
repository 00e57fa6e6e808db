// Package tcp provides [transport] connections on top of the operating
// system's TCP stack.
//
// Only IPv4 is supported.
package tcp

import (
	"context"
	"io"
	"net"
	"net/netip"
	"os"
	"sync"
	"syscall"
	"time"

	"tinyhttp/transport"

	"github.com/pkg/errors"
)

type conn struct {
	c net.Conn
}

var _ transport.Conn = (*conn)(nil)

// Wrap adapts c to [transport.Conn].
func Wrap(c net.Conn) transport.Conn { return &conn{c: c} }

func (c *conn) Read(p []byte) (int, error) {
	n, err := c.c.Read(p)
	return n, convertErr(err)
}

func (c *conn) Write(p []byte) (int, error) {
	n, err := c.c.Write(p)
	return n, convertErr(err)
}

func (c *conn) Close() error { return convertErr(c.c.Close()) }

func (c *conn) LocalAddr() net.Addr  { return c.c.LocalAddr() }
func (c *conn) RemoteAddr() net.Addr { return c.c.RemoteAddr() }

func (c *conn) SetReadDeadLine(t time.Time)  { _ = c.c.SetReadDeadline(t) }
func (c *conn) SetWriteDeadLine(t time.Time) { _ = c.c.SetWriteDeadline(t) }

func convertErr(err error) error {
	switch {
	case err == nil, err == io.EOF:
		return err
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrDeadLineExceeded
	case errors.Is(err, net.ErrClosed):
		return transport.ErrConnClosed
	case errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.ECONNRESET):
		return errors.Wrap(transport.ErrConnClosed, err.Error())
	}
	return err
}

type listener struct {
	l *net.TCPListener

	closeOnce sync.Once
}

var _ transport.ConnListener = (*listener)(nil)

// Listen binds the wildcard IPv4 address on port.
// Port 0 lets the kernel pick one, see [listener.Addr].
func Listen(port uint16) (*listener, error) {
	l, err := net.ListenTCP("tcp4", &net.TCPAddr{IP: net.IPv4zero, Port: int(port)})
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, errors.Wrap(transport.ErrAddrAlreadyInUse, err.Error())
		}
		return nil, errors.Wrapf(err, "listening on port %d", port)
	}

	return &listener{l: l}, nil
}

var aLongTimeAgo = time.Unix(1, 0)

// Accept blocks until a connection arrives, ctx is done or the listener is closed.
func (l *listener) Accept(ctx context.Context) (transport.Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Clear whatever a previous cancellation left behind.
	_ = l.l.SetDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() { _ = l.l.SetDeadline(aLongTimeAgo) })
	defer stop()

	c, err := l.l.Accept()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListenerClosed
		}
		return nil, errors.Wrap(err, "accepting connection")
	}

	return Wrap(c), nil
}

func (l *listener) Addr() net.Addr { return l.l.Addr() }

// Port is the bound port.
func (l *listener) Port() uint16 { return uint16(l.l.Addr().(*net.TCPAddr).Port) }

func (l *listener) Close() error {
	err := transport.ErrConnListenerClosed
	l.closeOnce.Do(func() { err = l.l.Close() })
	return err
}

// Dialer opens outgoing connections.
type Dialer struct {
	// Timeout bounds connection establishment. Zero means no limit
	// besides the one of the context passed to Dial.
	Timeout time.Duration
}

var _ transport.ConnDialer = (*Dialer)(nil)

func (d *Dialer) Dial(ctx context.Context, addr netip.AddrPort) (transport.Conn, error) {
	addr = netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port())
	if !addr.Addr().Is4() {
		return nil, errors.Wrapf(transport.ErrNetUnreachable, "dialing %s", addr)
	}

	nd := net.Dialer{Timeout: d.Timeout}
	c, err := nd.DialContext(ctx, "tcp4", addr.String())
	if err != nil {
		switch {
		case errors.Is(err, syscall.ECONNREFUSED):
			return nil, errors.Wrap(transport.ErrConnRefused, err.Error())
		case errors.Is(err, syscall.ENETUNREACH):
			return nil, errors.Wrap(transport.ErrNetUnreachable, err.Error())
		}
		return nil, errors.Wrapf(err, "dialing %s", addr)
	}

	return Wrap(c), nil
}

package pipe

import (
	"context"
	"net"
	"net/netip"
	"sync"

	"tinyhttp/transport"

	"github.com/benbjohnson/clock"
)

// DefaultBufSize is the per-direction buffer of pipes made by [Transport].
const DefaultBufSize = 4096

type pipeRequest struct {
	conn     *pipe
	accepted chan struct{}
}

// Transport routes dials to the listener registered at the same address.
type Transport struct {
	listeners map[netip.AddrPort]*pipeListener
	clock     clock.Clock
	bufSize   uint

	mu sync.Mutex
}

func NewTransport(clock clock.Clock) *Transport {
	return &Transport{
		listeners: make(map[netip.AddrPort]*pipeListener),
		clock:     clock,
		bufSize:   DefaultBufSize,
	}
}

var _ transport.ConnDialer = (*Transport)(nil)

func (pt *Transport) Dial(ctx context.Context, addr netip.AddrPort) (transport.Conn, error) {
	pt.mu.Lock()
	listener, ok := pt.listeners[addr]
	pt.mu.Unlock()

	if !ok {
		return nil, transport.ErrConnRefused
	}

	p1, p2 := Pipe("dialer", addr.String(), pt.clock, pt.bufSize)

	req := pipeRequest{
		conn:     p2,
		accepted: make(chan struct{}, 1),
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-listener.closed:
		return nil, transport.ErrConnRefused
	case listener.requests <- req:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case _, accepted := <-req.accepted:
		if !accepted {
			return nil, transport.ErrConnRefused
		}
	}

	return p1, nil
}

func (pt *Transport) Listen(addr netip.AddrPort) (*pipeListener, error) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if _, ok := pt.listeners[addr]; ok {
		return nil, transport.ErrAddrAlreadyInUse
	}

	pl := &pipeListener{
		addr:      addr,
		transport: pt,
		requests:  make(chan pipeRequest),
		closed:    make(chan struct{}),
	}
	pt.listeners[addr] = pl

	return pl, nil
}

type pipeListener struct {
	addr netip.AddrPort

	transport *Transport

	requests chan pipeRequest
	closed   chan struct{}

	mu sync.Mutex
}

var _ transport.ConnListener = (*pipeListener)(nil)

func (pl *pipeListener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-pl.closed:
		return nil, transport.ErrConnListenerClosed
	case request := <-pl.requests:
		select {
		case <-ctx.Done():
			close(request.accepted)
			return nil, ctx.Err()
		case request.accepted <- struct{}{}:
		}

		return request.conn, nil
	}
}

func (pl *pipeListener) Addr() net.Addr { return Addr{Name: pl.addr.String()} }

func (pl *pipeListener) Close() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	select {
	case <-pl.closed:
		return transport.ErrConnListenerClosed
	default:
	}

	close(pl.closed)

	pl.transport.mu.Lock()
	delete(pl.transport.listeners, pl.addr)
	pl.transport.mu.Unlock()

	return nil
}

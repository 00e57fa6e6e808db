// Package client sends a single request per connection and reads the
// response until the server closes it.
package client

import (
	"context"
	"log/slog"
	"net/netip"

	"tinyhttp/application/http"
	"tinyhttp/application/util/domain"
	"tinyhttp/lib/ds/buffer"
	iolib "tinyhttp/lib/io"
	"tinyhttp/transport"
	"tinyhttp/transport/tcp"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type Client struct {
	opts Options

	logger *slog.Logger
	clock  clock.Clock

	lookuper   domain.Lookuper
	connDialer transport.ConnDialer
}

func New(
	d transport.ConnDialer,
	lookuper domain.Lookuper,
	logger *slog.Logger,
	clock clock.Clock,
	opts Options,
) *Client {
	return &Client{
		connDialer: d,
		lookuper:   lookuper,
		logger:     logger,
		clock:      clock,
		opts:       opts,
	}
}

var defaultClient = New(
	&tcp.Dialer{},
	domain.NewNetLookuper(nil),
	slog.Default(),
	clock.New(),
	DefaultOptions,
)

// MakeRequest sends request with the default client.
func MakeRequest(ctx context.Context, request *http.Request, host string, port uint16) (*http.Response, error) {
	return defaultClient.Do(ctx, request, host, port)
}

// Do sends request to host:port and returns the parsed response.
// host is either an IPv4 literal or a name to look up. Nothing is added to
// the request, not even a Host header.
func (c *Client) Do(ctx context.Context, request *http.Request, host string, port uint16) (*http.Response, error) {
	payload, err := c.serialize(request)
	if err != nil {
		return nil, err
	}

	addr, err := c.resolve(ctx, host)
	if err != nil {
		return nil, newRequestError(ErrLookup, err)
	}

	logger := c.logger.With("host", host, "addr", addr, "port", port)

	dialCtx := ctx
	if timeout := c.opts.Timeout.DialTimeout; timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = c.clock.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := c.connDialer.Dial(dialCtx, netip.AddrPortFrom(addr, port))
	if err != nil {
		return nil, newRequestError(ErrConnect, err)
	}
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, transport.ErrConnClosed) {
			logger.Error("error when closing connection", "error", err)
		}
	}()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	raw, err := c.roundtrip(conn, payload)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newRequestError(ErrIO, ctxErr)
		}
		return nil, err
	}

	response, err := http.ParseResponse(raw, c.opts.Decode)
	if err != nil {
		return nil, newRequestError(ErrParse, err)
	}

	logger.Debug("received response", "status", response.StatusCode)
	return response, nil
}

func (c *Client) serialize(request *http.Request) ([]byte, error) {
	buf := buffer.New(uint(len(request.Body)) + 256)
	if err := http.NewRequestEncoder(buf).Encode(request); err != nil {
		return nil, newRequestError(ErrIO, err)
	}

	if limit := c.opts.MaxRequestSize; limit > 0 && buf.Len() > limit {
		return nil, newRequestError(ErrRequestTooLarge, errors.Errorf("%d bytes exceeds %d", buf.Len(), limit))
	}

	return buf.Bytes(), nil
}

func (c *Client) resolve(ctx context.Context, host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr = addr.Unmap(); !addr.Is4() {
			return netip.Addr{}, errors.Errorf("%s is not an IPv4 address", host)
		}
		return addr, nil
	}

	addrs, err := c.lookuper.LookupIP(ctx, host)
	if err != nil {
		return netip.Addr{}, errors.Wrapf(err, "lookup for host(%s) failed", host)
	}

	for _, addr := range addrs {
		if addr = addr.Unmap(); addr.Is4() {
			return addr, nil
		}
	}

	return netip.Addr{}, errors.Wrapf(domain.ErrDomainNotFound, "no IPv4 address for %s", host)
}

func (c *Client) roundtrip(conn transport.Conn, payload []byte) ([]byte, error) {
	if timeout := c.opts.Timeout.WriteTimeout; timeout > 0 {
		conn.SetWriteDeadLine(c.clock.Now().Add(timeout))
	}

	if _, err := iolib.WriteFull(conn, payload); err != nil {
		return nil, newRequestError(ErrIO, errors.Wrap(err, "sending request"))
	}

	if timeout := c.opts.Timeout.ReadTimeout; timeout > 0 {
		conn.SetReadDeadLine(c.clock.Now().Add(timeout))
	}

	raw, err := iolib.ReadAllLimit(conn, c.opts.MaxResponseSize)
	switch {
	case errors.Is(err, iolib.ErrLimitExceeded):
		return nil, newRequestError(ErrResponseTooLarge, err)
	case err != nil:
		return nil, newRequestError(ErrIO, errors.Wrap(err, "receiving response"))
	}

	return raw, nil
}

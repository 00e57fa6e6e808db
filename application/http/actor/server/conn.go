package server

import (
	"context"
	"io"
	"log/slog"

	"tinyhttp/application/http"
	"tinyhttp/application/http/status"
	"tinyhttp/lib/ds/buffer"
	"tinyhttp/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

const readChunkSize = 4096

var (
	errPeerClosed      = errors.New("peer closed before sending a request")
	errRequestTooLarge = errors.New("request is too large")
)

type conn struct {
	con    transport.Conn
	router *router
	clock  clock.Clock

	logger *slog.Logger

	opts Options
}

// serve answers exactly one request, then closes the connection.
func (c *conn) serve(ctx context.Context) {
	// Unblocks pending reads and writes on shutdown.
	stop := context.AfterFunc(ctx, func() { _ = c.con.Close() })

	defer func() {
		stop()
		c.logger.Debug("closing connection")
		if err := c.con.Close(); err != nil && !errors.Is(err, transport.ErrConnClosed) {
			c.logger.Error("error when closing connection", "error", err)
		}
	}()

	var response *http.Response

	request, err := c.readRequest()
	switch {
	case err == nil:
		response = c.handle(ctx, request)
	case ctx.Err() != nil:
		return
	case errors.Is(err, errPeerClosed):
		c.logger.Debug(err.Error())
		return
	case errors.Is(err, transport.ErrConnClosed):
		c.logger.Error("unexpected connection closure")
		return
	default:
		statusErr := toStatusError(err)
		c.logger.Info("rejecting request", "status", statusErr.Status.Code, "error", err)
		response = statusResponse(statusErr.Status)
	}

	if err := c.writeResponse(response); err != nil && ctx.Err() == nil {
		c.logger.Error("unexpected error while writing response", "error", err)
	}
}

// readRequest accumulates bytes until they hold a whole request.
func (c *conn) readRequest() (*http.Request, error) {
	if timeout := c.opts.Timeout.ReadTimeout; timeout > 0 {
		c.con.SetReadDeadLine(c.clock.Now().Add(timeout))
	}

	limit := c.opts.maxRequestSize()
	received := buffer.New(readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		want := min(uint(len(chunk)), limit-received.Len())
		n, err := c.con.Read(chunk[:want])
		received.Write(chunk[:n])

		if n > 0 || errors.Is(err, io.EOF) {
			request, perr := http.ParseRequest(received.Bytes(), c.opts.Decode)
			switch {
			case perr == nil:
				return request, nil
			case !errors.Is(perr, http.ErrIncomplete):
				return nil, perr
			case received.Len() >= limit:
				return nil, errRequestTooLarge
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				if received.Len() == 0 {
					return nil, errPeerClosed
				}
				return nil, errors.Wrap(http.ErrIncomplete, "peer closed in the middle of a request")
			}
			return nil, errors.Wrap(err, "reading request")
		}
	}
}

func (c *conn) handle(ctx context.Context, request *http.Request) *http.Response {
	handle, ok := c.router.match(request.Target)
	if !ok {
		response := http.NewResponse()
		setNotFound(response)
		return response
	}

	hctx := &HandleContext{
		ctx:        ctx,
		remoteAddr: c.con.RemoteAddr(),
		logger:     c.logger,
	}

	response := http.NewResponse()
	if err := hctx.doHandle(handle, request, response); err != nil {
		c.logger.Error("handler failed", "target", request.Target, "error", err)
		return statusResponse(status.InternalServerError)
	}

	return response
}

func (c *conn) writeResponse(response *http.Response) error {
	if timeout := c.opts.Timeout.WriteTimeout; timeout > 0 {
		c.con.SetWriteDeadLine(c.clock.Now().Add(timeout))
	}

	return http.NewResponseEncoder(c.con).Encode(response)
}

// toStatusError maps an error from reading a request onto the status answering it.
// Anything unrecognised is the client's fault.
func toStatusError(err error) status.Error {
	switch {
	case errors.Is(err, transport.ErrDeadLineExceeded):
		return status.NewError(err, status.RequestTimeout)
	case errors.Is(err, errRequestTooLarge):
		return status.NewError(err, status.ContentTooLarge)
	}

	return status.NewError(err, status.BadRequest)
}

// statusResponse is a bodiless response that closes the connection.
func statusResponse(s status.Status) *http.Response {
	response := http.NewResponse()
	response.SetStatus(s)
	response.AddHeader("Connection", "close")
	return response
}

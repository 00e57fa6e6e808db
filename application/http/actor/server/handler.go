package server

import (
	"context"
	"log/slog"
	"net"

	"tinyhttp/application/http"

	"github.com/pkg/errors"
)

// HandleFunc fills res for req. A handler that leaves the status unset
// is answered with 500.
type HandleFunc func(c *HandleContext, req *http.Request, res *http.Response)

type HandleContext struct {
	ctx context.Context

	remoteAddr net.Addr
	logger     *slog.Logger
}

func (c *HandleContext) doHandle(handle HandleFunc, req *http.Request, res *http.Response) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = errors.Errorf("handler panicked: %v", e)
		}
	}()

	handle(c, req, res)
	if res.StatusCode == 0 {
		return errors.New("handler did not set a status")
	}

	return nil
}

func (c *HandleContext) Context() context.Context { return c.ctx }
func (c *HandleContext) RemoteAddr() net.Addr     { return c.remoteAddr }
func (c *HandleContext) Logger() *slog.Logger     { return c.logger }

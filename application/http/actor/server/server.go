package server

import (
	"context"
	"log/slog"
	"sync"

	"tinyhttp/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type Server struct {
	l transport.ConnListener

	router router

	stop func()
	done chan struct{}
	wg   sync.WaitGroup

	logger *slog.Logger
	opts   Options

	clock clock.Clock
}

func New(
	l transport.ConnListener,
	logger *slog.Logger,
	clock clock.Clock,
	opts Options,
) *Server {
	s := &Server{
		l:      l,
		logger: logger,
		opts:   opts,
		clock:  clock,
	}

	return s
}

// Handle routes targets starting with prefix to handle.
// Routes are tried in registration order. They must not be added once the
// server is serving.
func (s *Server) Handle(prefix string, handle HandleFunc) {
	if handle == nil {
		panic("server: nil handler")
	}
	s.router.add(prefix, handle)
}

// Serve accepts connections until ctx is done or the listener is closed.
// It returns once every connection it accepted is closed.
func (s *Server) Serve(ctx context.Context) error {
	defer s.wg.Wait()

	var workers chan struct{}
	if s.opts.Workers > 0 {
		workers = make(chan struct{}, s.opts.Workers)
	}

	for {
		conn, err := s.acceptConn(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil, errors.Is(err, transport.ErrConnListenerClosed):
			return nil
		default:
			s.logger.Error("unexpected error when accepting connection", "error", err)
			continue
		}

		if workers == nil {
			conn.serve(ctx)
			continue
		}

		select {
		case workers <- struct{}{}:
		case <-ctx.Done():
			_ = conn.con.Close()
			return nil
		}

		s.wg.Add(1)
		go func() {
			defer func() {
				<-workers
				s.wg.Done()
			}()
			conn.serve(ctx)
		}()
	}
}

func (s *Server) acceptConn(ctx context.Context) (*conn, error) {
	con, err := s.l.Accept(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "listening for connection")
	}

	conn := &conn{
		con:    con,
		router: &s.router,
		opts:   s.opts,
		logger: s.logger.With("conn", con.RemoteAddr()),
		clock:  s.clock,
	}

	return conn, nil
}

// Start runs [Server.Serve] in the background until [Server.Close].
func (s *Server) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.Serve(ctx); err != nil {
			s.logger.Error("server stopped", "error", err)
		}
	}()
}

func (s *Server) Close() error {
	if s.stop == nil {
		return nil
	}

	s.stop()
	<-s.done
	return nil
}

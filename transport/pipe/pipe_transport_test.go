package pipe

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"tinyhttp/transport"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

var testAddr = netip.MustParseAddrPort("10.0.0.1:80")

type TransportTestSuite struct {
	suite.Suite

	transport *Transport
}

func TestTransportTestSuite(t *testing.T) {
	suite.Run(t, new(TransportTestSuite))
}

func (s *TransportTestSuite) SetupTest() {
	s.transport = NewTransport(clock.New())
}

func (s *TransportTestSuite) TestListen() {
	lis, err := s.transport.Listen(testAddr)
	s.Require().NoError(err)
	s.Require().NotNil(lis)

	got, ok := s.transport.listeners[testAddr]
	s.True(ok)
	s.Equal(lis, got)
	s.Equal(testAddr.String(), lis.Addr().String())

	lis, err = s.transport.Listen(testAddr)
	s.ErrorIs(err, transport.ErrAddrAlreadyInUse)
	s.Nil(lis)
}

func (s *TransportTestSuite) TestDial() {
	lis, err := s.transport.Listen(testAddr)
	s.Require().NoError(err)
	s.Require().NotNil(lis)

	accepted := make(chan transport.Conn, 1)
	go func() {
		c, err := lis.Accept(context.Background())
		s.NoError(err)
		accepted <- c
	}()

	conn, err := s.transport.Dial(context.Background(), testAddr)
	s.Require().NoError(err)
	s.Require().NotNil(conn)

	s.Equal(testAddr.String(), conn.RemoteAddr().String())
	s.Equal("dialer", (<-accepted).RemoteAddr().String())
}

func (s *TransportTestSuite) TestDialNoListener() {
	conn, err := s.transport.Dial(context.Background(), testAddr)
	s.ErrorIs(err, transport.ErrConnRefused)
	s.Nil(conn)
}

func (s *TransportTestSuite) TestDialCancels() {
	_, err := s.transport.Listen(testAddr)
	s.Require().NoError(err)

	// Nobody accepts.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	conn, err := s.transport.Dial(ctx, testAddr)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Nil(conn)
}

type ListenerTestSuite struct {
	suite.Suite

	transport *Transport
	pl        *pipeListener
}

func TestListenerTestSuite(t *testing.T) {
	suite.Run(t, new(ListenerTestSuite))
}

func (s *ListenerTestSuite) SetupTest() {
	s.transport = NewTransport(clock.New())

	var err error
	s.pl, err = s.transport.Listen(testAddr)
	s.Require().NoError(err)
}

func (s *ListenerTestSuite) TestAccept() {
	_, p2 := Pipe("dialer", testAddr.String(), s.transport.clock, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)

		req := pipeRequest{conn: p2, accepted: make(chan struct{}, 1)}

		s.pl.requests <- req

		_, ok := <-req.accepted
		s.True(ok)
	}()

	conn, err := s.pl.Accept(context.Background())
	s.Equal(p2, conn)
	s.NoError(err)
	<-done
}

func (s *ListenerTestSuite) TestAcceptCancels() {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	conn, err := s.pl.Accept(ctx)
	s.Nil(conn)
	s.ErrorIs(err, context.Canceled)
}

func (s *ListenerTestSuite) TestClose() {
	done := make(chan error, 1)
	go func() {
		_, err := s.pl.Accept(context.Background())
		done <- err
	}()

	s.Require().NoError(s.pl.Close())
	s.ErrorIs(<-done, transport.ErrConnListenerClosed)

	s.ErrorIs(s.pl.Close(), transport.ErrConnListenerClosed)

	listener, ok := s.transport.listeners[testAddr]
	s.False(ok)
	s.Nil(listener)

	_, err := s.transport.Dial(context.Background(), testAddr)
	s.ErrorIs(err, transport.ErrConnRefused)
}

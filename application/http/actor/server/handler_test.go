package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"tinyhttp/application/http"
	"tinyhttp/transport/pipe"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HandleContextTestSuite struct {
	suite.Suite

	hctx    *HandleContext
	request *http.Request
}

func TestHandleContextTestSuite(t *testing.T) {
	suite.Run(t, new(HandleContextTestSuite))
}

func (s *HandleContextTestSuite) SetupTest() {
	s.request = http.NewRequest()
	s.request.SetStatusLine(http.MethodGet, "/")

	s.hctx = &HandleContext{
		ctx:        context.Background(),
		remoteAddr: pipe.Addr{Name: "remote"},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *HandleContextTestSuite) TestDoHandle() {
	handle := func(c *HandleContext, req *http.Request, res *http.Response) {
		s.Equal(s.request, req)
		s.Equal("remote", c.RemoteAddr().String())
		s.Equal(context.Background(), c.Context())
		s.NotNil(c.Logger())
		res.SetStatusLine(204, "No Content")
	}

	res := http.NewResponse()
	s.NoError(s.hctx.doHandle(handle, s.request, res))
	s.Equal(uint16(204), res.StatusCode)
}

func (s *HandleContextTestSuite) TestDoHandlePanics() {
	handle := func(_ *HandleContext, _ *http.Request, _ *http.Response) {
		panic("oops")
	}

	err := s.hctx.doHandle(handle, s.request, http.NewResponse())
	s.ErrorContains(err, "oops")
}

func (s *HandleContextTestSuite) TestDoHandleStatusUnset() {
	handle := func(_ *HandleContext, _ *http.Request, res *http.Response) {
		res.AddHeader("X", "y")
	}

	s.Error(s.hctx.doHandle(handle, s.request, http.NewResponse()))
}

func TestEnsureMethod(t *testing.T) {
	testcases := []struct {
		desc     string
		method   string
		expected bool
	}{
		{desc: "same method", method: http.MethodGet, expected: true},
		{desc: "other method", method: http.MethodPost, expected: false},
		{desc: "methods are case sensitive", method: "get", expected: false},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			req := http.NewRequest()
			req.SetStatusLine(tc.method, "/")
			res := http.NewResponse()

			ok := EnsureMethod(req, res, http.MethodGet)
			if tc.expected {
				require.True(t, ok)
				require.Zero(t, res.StatusCode)
				return
			}

			require.False(t, ok)
			require.Equal(t, uint16(405), res.StatusCode)
			require.Empty(t, res.ReasonPhrase)
			require.Nil(t, res.Body)
			require.Zero(t, res.Headers.Len())
		})
	}
}

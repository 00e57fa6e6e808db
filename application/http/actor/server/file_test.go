package server

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"tinyhttp/application/http"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"
)

type ServeFileTestSuite struct {
	suite.Suite

	dir  string
	hctx *HandleContext
}

func TestServeFileTestSuite(t *testing.T) {
	suite.Run(t, new(ServeFileTestSuite))
}

func (s *ServeFileTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.hctx = &HandleContext{
		ctx:    context.Background(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (s *ServeFileTestSuite) serve(handle HandleFunc, method string) *http.Response {
	req := http.NewRequest()
	req.SetStatusLine(method, "/file")
	res := http.NewResponse()
	s.Require().NoError(s.hctx.doHandle(handle, req, res))
	return res
}

func (s *ServeFileTestSuite) TestServe() {
	path := filepath.Join(s.dir, "index.html")
	s.Require().NoError(os.WriteFile(path, []byte("<p>hi</p>"), 0o644))

	res := s.serve(ServeFile(http.ContentTypeTextHTML, path), http.MethodGet)

	s.Equal(uint16(200), res.StatusCode)
	s.Equal("OK", res.ReasonPhrase)
	s.Equal([]http.Field{
		{Name: "Content-Type", Value: http.ContentTypeTextHTML},
		{Name: "Connection", Value: "close"},
		{Name: "Content-Length", Value: "9"},
	}, res.Headers.Fields())
	s.Equal([]byte("<p>hi</p>"), res.Body)
}

func (s *ServeFileTestSuite) TestReadsEveryRequest() {
	path := filepath.Join(s.dir, "data.txt")
	handle := ServeFile(http.ContentTypeTextPlain, path)

	// Missing at first.
	res := s.serve(handle, http.MethodGet)
	s.Equal(uint16(404), res.StatusCode)
	s.Equal([]byte("404 Not Found"), res.Body)
	v, _ := res.Headers.Get("Connection")
	s.Equal("close", v)
	v, _ = res.Headers.Get("Content-Length")
	s.Equal("13", v)

	s.Require().NoError(os.WriteFile(path, []byte("v1"), 0o644))
	s.Equal([]byte("v1"), s.serve(handle, http.MethodGet).Body)

	s.Require().NoError(os.WriteFile(path, []byte("v2"), 0o644))
	s.Equal([]byte("v2"), s.serve(handle, http.MethodGet).Body)
}

func (s *ServeFileTestSuite) TestEmptyFile() {
	path := filepath.Join(s.dir, "empty")
	s.Require().NoError(os.WriteFile(path, nil, 0o644))

	res := s.serve(ServeFile(http.ContentTypeTextPlain, path), http.MethodGet)
	s.Equal(uint16(200), res.StatusCode)
	s.Nil(res.Body)
	v, ok := res.Headers.Get("Content-Length")
	s.True(ok)
	s.Equal("0", v)
}

func (s *ServeFileTestSuite) TestMethodNotAllowed() {
	res := s.serve(ServeFile(http.ContentTypeTextPlain, filepath.Join(s.dir, "x")), http.MethodPost)
	s.Equal(uint16(405), res.StatusCode)
	s.Empty(res.ReasonPhrase)
	s.Nil(res.Body)
}

func (s *ServeFileTestSuite) TestHandleFile() {
	srv := New(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), clock.NewMock(), DefaultOptions)

	s.NoError(srv.HandleFile("/missing", http.ContentTypeTextPlain, filepath.Join(s.dir, "nope")))
	s.ErrorIs(srv.HandleFile("/", "", "x"), ErrInvalidFileHandler)
	s.ErrorIs(srv.HandleFile("/", http.ContentTypeTextPlain, ""), ErrInvalidFileHandler)

	s.Len(srv.router.routes, 1)
}

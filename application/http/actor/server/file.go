package server

import (
	"os"

	"tinyhttp/application/http"
	"tinyhttp/application/http/status"

	"github.com/pkg/errors"
)

var ErrInvalidFileHandler = errors.New("file handler needs a content type and a path")

var notFoundBody = []byte("404 Not Found")

// ServeFile answers GET requests with the content of the file at path.
// The file is read on every request, so changes show up without a restart.
func ServeFile(contentType, path string) HandleFunc {
	return func(c *HandleContext, req *http.Request, res *http.Response) {
		if !EnsureMethod(req, res, http.MethodGet) {
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			c.Logger().Info("cannot read served file", "path", path, "error", err)
			setNotFound(res)
			return
		}

		res.SetStatus(status.OK)
		res.AddHeader("Content-Type", contentType)
		res.AddHeader("Connection", "close")
		res.SetBody(content)
	}
}

// HandleFile registers [ServeFile] under prefix.
// The file doesn't have to exist yet.
func (s *Server) HandleFile(prefix, contentType, path string) error {
	if contentType == "" || path == "" {
		return ErrInvalidFileHandler
	}

	s.Handle(prefix, ServeFile(contentType, path))
	return nil
}

func setNotFound(res *http.Response) {
	res.SetStatus(status.NotFound)
	res.AddHeader("Connection", "close")
	res.SetBody(notFoundBody)
}

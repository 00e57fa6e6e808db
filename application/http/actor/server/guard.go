package server

import "tinyhttp/application/http"

// EnsureMethod reports whether req uses method.
// If not, res becomes a bare 405 and the handler should return right away.
func EnsureMethod(req *http.Request, res *http.Response, method string) bool {
	if req.Method == method {
		return true
	}

	res.SetStatusLine(405, "")
	return false
}

// Package transport defines the byte-stream connections the HTTP actors run on.
package transport

import "errors"

var (
	ErrConnClosed         = errors.New("connection is closed")
	ErrConnListenerClosed = errors.New("conn listener is closed")
	ErrDeadLineExceeded   = errors.New("deadline exceeded")

	ErrConnRefused      = errors.New("connection refused")
	ErrNetUnreachable   = errors.New("network is unreachable")
	ErrAddrAlreadyInUse = errors.New("address already in use")
)

// Package http implements a minimal Hypertext Transfer Protocol (HTTP/1.1)
// message model and its wire format.
//
// Only Content-Length framing is supported. Field names are case-sensitive
// and targets are kept as received.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc9112
package http

package client

import (
	"time"

	"tinyhttp/application/http"
)

const (
	DefaultMaxRequestSize  = 8 << 10
	DefaultMaxResponseSize = 1 << 20
)

type Options struct {
	// MaxRequestSize bounds the serialized request. Zero means no limit.
	MaxRequestSize uint
	// MaxResponseSize bounds how much of the response is read. Zero means no limit.
	MaxResponseSize uint

	Timeout TimeoutOptions
	Decode  http.DecodeOptions
}

type TimeoutOptions struct {
	DialTimeout  time.Duration
	WriteTimeout time.Duration
	ReadTimeout  time.Duration
}

var DefaultOptions = Options{
	MaxRequestSize:  DefaultMaxRequestSize,
	MaxResponseSize: DefaultMaxResponseSize,
	Decode:          http.DefaultDecodeOptions,
}

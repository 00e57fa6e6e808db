package server

import (
	"time"

	"tinyhttp/application/http"
)

const DefaultMaxRequestSize = 16 << 10

type Options struct {
	// MaxRequestSize bounds how many bytes are read for a single request.
	// Zero means [DefaultMaxRequestSize].
	MaxRequestSize uint
	// Workers is the number of connections served at once.
	// Zero serves connections one after another.
	Workers uint

	Timeout TimeoutOptions
	Decode  http.DecodeOptions
}

type TimeoutOptions struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

var DefaultOptions = Options{
	MaxRequestSize: DefaultMaxRequestSize,
	Decode:         http.DefaultDecodeOptions,
}

func (o Options) maxRequestSize() uint {
	if o.MaxRequestSize == 0 {
		return DefaultMaxRequestSize
	}
	return o.MaxRequestSize
}

package ecs

import "github.com/rs/zerolog"

type options struct {
	logger zerolog.Logger
}

type Option func(o *options)

func newOptions(opts []Option) options {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger entity lifecycle events are written to. Events are logged at trace level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

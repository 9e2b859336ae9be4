package di

import "go.uber.org/zap"

// Option configures a Container.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	validate bool
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// WithLogger sets the logger used for debug events (resolve, cache hit,
// constructed, wired). Errors are returned, never logged.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithValidation makes New run Table.Validate and fail on any problem.
func WithValidation() Option {
	return func(o *options) { o.validate = true }
}

package lthreads

// Option configures a backend reactor at construction time, following
// the functional-options pattern common across this ecosystem's
// networking libraries.
type Option func(*backendConfig)

type backendConfig struct {
	maxEvents int
}

func newBackendConfig(opts []Option) backendConfig {
	cfg := backendConfig{maxEvents: 256}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxEvents bounds how many readiness reports a single backend
// Wait call can return. The default is 256.
func WithMaxEvents(n int) Option {
	return func(cfg *backendConfig) {
		if n > 0 {
			cfg.maxEvents = n
		}
	}
}

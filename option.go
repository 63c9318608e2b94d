package retryctl

type controllerOptions struct {
	mode     Mode
	onStatus func(Status)
	clock    Clock
}

type Option func(*controllerOptions)

// WithMode selects auto or manual continuation. The default is ModeAuto.
func WithMode(mode Mode) Option {
	return func(opts *controllerOptions) {
		opts.mode = mode
	}
}

// WithOnStatus registers a callback invoked after each status is published
// to the status channel. The callback runs outside the controller's lock, so
// it may call back into the controller.
func WithOnStatus(fn func(Status)) Option {
	return func(opts *controllerOptions) {
		opts.onStatus = fn
	}
}

// WithClock replaces the timer source, mainly for tests.
func WithClock(clock Clock) Option {
	return func(opts *controllerOptions) {
		opts.clock = clock
	}
}

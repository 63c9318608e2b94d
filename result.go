package retryctl

// Result is the immutable outcome of an Execute call. Results are produced
// only by the Controller; compare them by value.
type Result[T any] struct {
	status Status
	data   T
}

// Success wraps the value that ended the cycle.
func Success[T any](data T) Result[T] {
	return Result[T]{status: StatusSuccess, data: data}
}

// Fail is the outcome of a cycle that exhausted its attempts.
func Fail[T any]() Result[T] {
	return Result[T]{status: StatusFail}
}

// Skip is returned by Execute while another cycle is already running. It
// carries no data and has no effect on the running cycle.
func Skip[T any]() Result[T] {
	return Result[T]{status: StatusAttempt}
}

// Canceled is the outcome of a cycle ended by Cancel or a cancelled context.
func Canceled[T any]() Result[T] {
	return Result[T]{status: StatusCanceled}
}

// Status returns which of the four outcomes this result represents.
func (r Result[T]) Status() Status {
	return r.status
}

// Data returns the action's value; it is the zero value unless IsSuccess.
func (r Result[T]) Data() T {
	return r.data
}

func (r Result[T]) IsSuccess() bool { return r.status == StatusSuccess }

func (r Result[T]) IsFail() bool { return r.status == StatusFail }

func (r Result[T]) IsSkip() bool { return r.status == StatusAttempt }

func (r Result[T]) IsCanceled() bool { return r.status == StatusCanceled }

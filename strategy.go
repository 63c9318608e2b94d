package retryctl

import (
	"math/rand"
	"time"
)

// Strategy decides, per attempt, whether the controller keeps retrying and
// how long it waits before the next attempt.
//
// AttemptDelay receives the attempt number starting from 1 and must return a
// non-negative duration. ShouldRetry receives the number of attempts
// completed so far (0 before the first attempt) together with the error that
// failed the last attempt, and gates attempt n+1; the default rule is
// attempt < MaxAttempts. MaxAttempts is a hard ceiling the controller
// enforces regardless of what ShouldRetry reports.
type Strategy interface {
	MaxAttempts() int
	AttemptDelay(attempt int) time.Duration
	ShouldRetry(attempt int, lastErr error) bool
}

type fixedStrategy struct {
	maxAttempts int
	delay       time.Duration
}

// Fixed returns a Strategy waiting the same delay between every attempt.
func Fixed(maxAttempts int, delay time.Duration) Strategy {
	return fixedStrategy{maxAttempts: maxAttempts, delay: delay}
}

func (s fixedStrategy) MaxAttempts() int { return s.maxAttempts }

func (s fixedStrategy) AttemptDelay(attempt int) time.Duration { return s.delay }

func (s fixedStrategy) ShouldRetry(attempt int, _ error) bool {
	return attempt < s.maxAttempts
}

type linearStrategy struct {
	maxAttempts int
	base        time.Duration
}

// Linear returns a Strategy whose delay grows by base after every attempt.
func Linear(maxAttempts int, base time.Duration) Strategy {
	return linearStrategy{maxAttempts: maxAttempts, base: base}
}

func (s linearStrategy) MaxAttempts() int { return s.maxAttempts }

func (s linearStrategy) AttemptDelay(attempt int) time.Duration {
	return s.base * time.Duration(attempt)
}

func (s linearStrategy) ShouldRetry(attempt int, _ error) bool {
	return attempt < s.maxAttempts
}

type exponentialStrategy struct {
	maxAttempts int
	base        time.Duration
	max         time.Duration
}

// Exponential returns a Strategy that doubles the delay after every attempt,
// capped at max.
func Exponential(maxAttempts int, base, max time.Duration) Strategy {
	return exponentialStrategy{maxAttempts: maxAttempts, base: base, max: max}
}

func (s exponentialStrategy) MaxAttempts() int { return s.maxAttempts }

func (s exponentialStrategy) AttemptDelay(attempt int) time.Duration {
	// attempt-1 so the first delay equals base
	shift := attempt - 1
	if shift >= 62 {
		return s.max
	}
	d := s.base * time.Duration(1<<shift)
	if d > s.max || d <= 0 {
		return s.max
	}
	return d
}

func (s exponentialStrategy) ShouldRetry(attempt int, _ error) bool {
	return attempt < s.maxAttempts
}

type jitteredStrategy struct {
	Strategy
	factor float64
}

// Jittered wraps another Strategy and spreads its delays by a random
// ±factor, with 0 < factor <= 1.
func Jittered(s Strategy, factor float64) Strategy {
	return jitteredStrategy{Strategy: s, factor: factor}
}

func (s jitteredStrategy) AttemptDelay(attempt int) time.Duration {
	d := s.Strategy.AttemptDelay(attempt)
	if s.factor <= 0 || d <= 0 {
		return d
	}
	spread := 1 + s.factor*(2*rand.Float64()-1)
	return time.Duration(float64(d) * spread)
}

type stopOnStrategy struct {
	Strategy
	fn func(error) bool
}

// StopOn wraps another Strategy so that continuation stops early when fn
// reports the last error as non-retryable.
func StopOn(s Strategy, fn func(error) bool) Strategy {
	return stopOnStrategy{Strategy: s, fn: fn}
}

func (s stopOnStrategy) ShouldRetry(attempt int, lastErr error) bool {
	if lastErr != nil && s.fn(lastErr) {
		return false
	}
	return s.Strategy.ShouldRetry(attempt, lastErr)
}

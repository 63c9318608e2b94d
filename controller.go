package retryctl

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/saltfishpr/retryctl/future"
	"github.com/saltfishpr/retryctl/routine"
)

// Action is the caller-supplied fallible operation. A nil error resolves the
// cycle with the returned value; any non-nil error (including ErrNoResult
// and recovered panics) makes the controller schedule another attempt.
type Action[T any] func(ctx context.Context) (T, error)

var (
	// ErrNoResult lets an action report "no result yet" without crafting its
	// own error.
	ErrNoResult = errors.New("retryctl: no result yet")

	// ErrNotManual is returned by Resume on an auto-mode controller.
	ErrNotManual = errors.New("retryctl: resume is only valid in manual mode")
	// ErrNotStarted is returned by Resume before Execute has started a cycle.
	ErrNotStarted = errors.New("retryctl: no retry cycle in progress")
)

// Controller drives repeated invocations of a single action until it
// succeeds, exhausts its attempts, or is cancelled. One cycle runs at a time;
// all cycle state is owned by the controller and guarded by its mutex, so a
// Controller is safe for concurrent use.
type Controller[T any] struct {
	strategy Strategy
	mode     Mode
	onStatus func(Status)
	clock    Clock

	mu           sync.Mutex
	attempt      int
	ctx          context.Context
	action       Action[T]
	pending      *future.Promise[Result[T]]
	statusC      chan Status
	statusClosed bool
	timer        Timer
	lastErr      error
}

// New creates an idle controller using the given strategy.
func New[T any](strategy Strategy, options ...Option) *Controller[T] {
	opts := controllerOptions{
		mode:  ModeAuto,
		clock: realClock{},
	}
	for _, option := range options {
		option(&opts)
	}
	return &Controller[T]{
		strategy: strategy,
		mode:     opts.mode,
		onStatus: opts.onStatus,
		clock:    opts.clock,
	}
}

// Execute starts a retry cycle for action and returns a future that resolves
// with exactly one Result for this cycle. The first attempt runs
// asynchronously; ctx is cached for the cycle and passed to every attempt.
//
// Calling Execute while a cycle is already running returns a pre-resolved
// Skip result and leaves the running cycle untouched.
func (c *Controller[T]) Execute(ctx context.Context, action Action[T]) *future.Future[Result[T]] {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return future.Done(Skip[T]())
	}
	if c.attempt > 0 && c.attempt >= c.strategy.MaxAttempts() {
		// stale counter left behind by an interrupted teardown
		c.resetLocked()
	}
	c.ctx = ctx
	c.action = action
	p := future.NewPromise[Result[T]]()
	c.pending = p
	size := c.strategy.MaxAttempts() + 1
	if size < 1 {
		size = 1
	}
	c.statusC = make(chan Status, size)
	c.statusClosed = false
	allowed := c.strategy.ShouldRetry(c.attempt, nil)
	c.mu.Unlock()

	if !allowed {
		// the strategy refuses even a first attempt; fail terminally instead
		// of leaving the caller unresolved
		p.SetSafety(Fail[T](), nil)
		c.emit(StatusFail)
		return p.Future()
	}
	routine.GoSafe(c.performAttempt)
	return p.Future()
}

// Resume performs the next attempt of a paused manual-mode cycle. It returns
// ErrNotManual on an auto-mode controller and ErrNotStarted when no cycle is
// in progress.
func (c *Controller[T]) Resume() error {
	c.mu.Lock()
	if c.mode != ModeManual {
		c.mu.Unlock()
		return errors.WithStack(ErrNotManual)
	}
	if c.pending == nil || c.action == nil {
		c.mu.Unlock()
		return errors.WithStack(ErrNotStarted)
	}
	if c.timer != nil {
		// a manual step preempts the scheduled wake-up but keeps its
		// exhaustion check and attempt event
		c.timer.Stop()
		c.timer = nil
		c.mu.Unlock()
		if c.wake() {
			routine.GoSafe(c.performAttempt)
		}
		return nil
	}
	c.mu.Unlock()

	routine.GoSafe(c.performAttempt)
	return nil
}

// Cancel resolves the pending result with Canceled, emits StatusCanceled and
// tears the cycle down. It is a no-op when no cycle is running.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	p := c.pending
	c.mu.Unlock()

	if p == nil || !p.SetSafety(Canceled[T](), nil) {
		return
	}
	c.emit(StatusCanceled)
}

// Stop tears the current cycle down: it resets the attempt counter, cancels
// any pending timer, closes the status channel and drops the cached action.
// It is idempotent and always safe to call.
//
// Stop does NOT resolve the pending future; a caller blocked on Get after a
// direct Stop stays blocked. Use Cancel for a teardown that resolves the
// future.
func (c *Controller[T]) Stop() {
	c.mu.Lock()
	c.resetLocked()
	c.mu.Unlock()
}

// IsActive reports whether a delay timer is outstanding.
func (c *Controller[T]) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Attempt returns the number of attempts performed in the current cycle. It
// is 0 while the controller is idle.
func (c *Controller[T]) Attempt() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempt
}

// Mode returns the continuation mode fixed at construction.
func (c *Controller[T]) Mode() Mode {
	return c.mode
}

// Status returns the current cycle's event channel, or nil before the first
// Execute call; a receive from a nil channel blocks forever, so subscribe
// after starting a cycle. The channel is replaced at the start of each cycle
// and closed when the cycle ends; events already published can still be
// drained after close. Status events arrive in attempt order, with the
// terminal event last.
func (c *Controller[T]) Status() <-chan Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusC
}

// performAttempt runs one invocation of the cached action. It is only ever
// reached from the Execute goroutine, a fired timer, or Resume; the cycle
// state machine guarantees at most one of those is outstanding.
func (c *Controller[T]) performAttempt() {
	c.mu.Lock()
	if c.pending == nil || c.action == nil || !c.pending.IsFree() {
		c.mu.Unlock()
		return
	}
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		c.Cancel()
		return
	}
	c.attempt++
	ctx := c.ctx
	action := c.action
	c.mu.Unlock()

	val, err := invoke(ctx, action)
	if err != nil {
		c.scheduleNext(err)
		return
	}

	c.mu.Lock()
	p := c.pending
	c.mu.Unlock()
	if p == nil || !p.SetSafety(Success(val), nil) {
		// cycle was stopped or cancelled while the action ran
		return
	}
	c.emit(StatusSuccess)
}

// invoke calls the action, converting a panic into an error so a faulty
// action is retried like a failing one.
func invoke[T any](ctx context.Context, action Action[T]) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = routine.NewPanicError(1, r)
		}
	}()
	return action(ctx)
}

// scheduleNext arms the single delay timer for the next attempt.
func (c *Controller[T]) scheduleNext(lastErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return
	}
	c.lastErr = lastErr
	d := c.strategy.AttemptDelay(c.attempt)
	if d < 0 {
		d = 0
	}
	c.timer = c.clock.AfterFunc(d, c.onTimerFired)
}

func (c *Controller[T]) onTimerFired() {
	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	proceed := c.mode == ModeAuto && c.strategy.ShouldRetry(c.attempt, c.lastErr)
	c.mu.Unlock()

	if c.wake() && proceed {
		c.performAttempt()
	}
	// in manual mode (or when the strategy refuses) the cycle pauses here
	// until Resume
}

// wake finishes the transition out of a delay, whether the timer fired or a
// manual Resume preempted it: it cancels the cycle when its context is done,
// fails it when another attempt would exceed the ceiling, and otherwise
// emits StatusAttempt. It reports whether the cycle continues.
func (c *Controller[T]) wake() bool {
	c.mu.Lock()
	if c.pending == nil || !c.pending.IsFree() {
		c.mu.Unlock()
		return false
	}
	if c.ctx.Err() != nil {
		c.mu.Unlock()
		c.Cancel()
		return false
	}
	if c.attempt+1 > c.strategy.MaxAttempts() {
		p := c.pending
		c.mu.Unlock()
		if p.SetSafety(Fail[T](), nil) {
			c.emit(StatusFail)
		}
		return false
	}
	c.mu.Unlock()

	c.emit(StatusAttempt)
	return true
}

// emit publishes st to the status channel, then to the callback, and tears
// the cycle down when st is terminal. The callback runs outside the lock so
// it may call back into the controller.
func (c *Controller[T]) emit(st Status) {
	c.mu.Lock()
	if !st.Terminal() && (c.pending == nil || !c.pending.IsFree()) {
		// the cycle was resolved concurrently; a non-terminal event must
		// never follow the terminal one
		c.mu.Unlock()
		return
	}
	if c.statusC != nil && !c.statusClosed {
		select {
		case c.statusC <- st:
		default:
			// the buffer is sized for a full cycle; drop rather than block
			// if a strategy misreports MaxAttempts
		}
	}
	cb := c.onStatus
	c.mu.Unlock()

	if cb != nil {
		cb(st)
	}
	if st.Terminal() {
		c.Stop()
	}
}

func (c *Controller[T]) resetLocked() {
	c.attempt = 0
	c.lastErr = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.statusC != nil && !c.statusClosed {
		close(c.statusC)
		c.statusClosed = true
	}
	c.pending = nil
	c.action = nil
	c.ctx = nil
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"log/slog"
	"runtime/debug"
	"time"

	"code.hybscloud.com/kont"
)

// State is a Scheduler lifecycle state.
type State uint8

const (
	Idle State = iota
	Active
	Suspended
	Completing
	Aborting
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Active:
		return "Active"
	case Suspended:
		return "Suspended"
	case Completing:
		return "Completing"
	case Aborting:
		return "Aborting"
	case Terminated:
		return "Terminated"
	}
	return "State(?)"
}

// ending reports whether a terminal transition has begun.
func (s State) ending() bool {
	return s >= Completing
}

// Callbacks are the caller-supplied callables of one activation.
// Exactly one of Task and Expr is set.
type Callbacks struct {
	OnComplete func()
	OnAbort    func(err error)
	Task       Task
	Expr       kont.Expr[struct{}]
}

// Options are the optional parts of an activation.
type Options struct {
	// Identity is an opaque key a caller may use to correlate activations,
	// e.g. to place a progress indicator. The scheduler never inspects it.
	Identity any
	// Config defaults to DefaultConfig when nil.
	Config *Config
	// Logger defaults to a logger that discards everything.
	Logger *slog.Logger
	// Paint is called by Draw.
	Paint func()
}

// Scheduler drives one task through the host loop, one step per tick.
//
// All methods must be called from the host loop goroutine. The scheduler
// schedules every next tick itself through Host.After; ticks never overlap.
type Scheduler struct {
	reg      *Registry
	host     Host
	cb       Callbacks
	cfg      Config
	log      *slog.Logger
	paint    func()
	identity any
	serial   Serial

	state   State
	ctx     Resumable
	guard   viewGuard
	pushed  bool
	gen     uint64
	outcome Outcome

	cancelRequested bool
	cancelReason    string

	pointerX, pointerY int
	pointerFlags       uint32
	pointerMoves       uint64

	steps    uint64
	lastTick time.Time
}

// New starts an activation of cb on host.
//
// Invalid arguments return a *ConfigError and leave all state untouched.
// If another activation holds reg, New returns ErrBusy and does nothing else.
// Otherwise the registry is held, the view is saved (Config.ReduceRedraw),
// the scheduler is pushed as the host's active tool and the first tick is
// scheduled; the task itself first runs on that tick.
func New(reg *Registry, host Host, cb Callbacks, opts Options) (*Scheduler, error) {
	if err := validate(reg, host, cb); err != nil {
		return nil, err
	}
	serial := nextSerial()
	if !reg.TryAcquire(serial) {
		return nil, ErrBusy
	}

	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		reg:      reg,
		host:     host,
		cb:       cb,
		cfg:      cfg.normalized(),
		log:      logger,
		paint:    opts.Paint,
		identity: opts.Identity,
		serial:   serial,
		guard:    viewGuard{host: host},
	}

	ok := false
	defer func() {
		if !ok {
			reg.Release(serial)
		}
	}()
	s.state = Active
	if s.cfg.ReduceRedraw {
		s.guard.Save()
	}
	s.pushed = true
	host.PushTool(s)
	s.schedule(s.cfg.TickInterval)
	ok = true
	s.log.Debug("tick: activation started", "serial", serial)
	return s, nil
}

func validate(reg *Registry, host Host, cb Callbacks) error {
	switch {
	case reg == nil:
		return &ConfigError{Arg: "registry", Reason: "nil"}
	case host == nil:
		return &ConfigError{Arg: "host", Reason: "nil"}
	case cb.OnComplete == nil:
		return &ConfigError{Arg: "onComplete", Reason: "nil callback"}
	case cb.OnAbort == nil:
		return &ConfigError{Arg: "onAbort", Reason: "nil callback"}
	case cb.Task == nil && cb.Expr.Frame == nil:
		return &ConfigError{Arg: "task", Reason: "missing"}
	case cb.Task != nil && cb.Expr.Frame != nil:
		return &ConfigError{Arg: "task", Reason: "both Task and Expr given"}
	}
	return nil
}

// schedule asks the host for the next tick after d. Only the most recently
// scheduled tick is live; an older one still pending in the host is ignored.
func (s *Scheduler) schedule(d time.Duration) {
	s.gen++
	gen := s.gen
	s.host.After(d, Once(func() {
		if gen == s.gen {
			s.Tick()
		}
	}))
}

// Tick runs one step of the task. The host invokes it through the callback
// the scheduler scheduled; it is also safe to call directly from the host
// loop, and a call made while a step is in progress aborts the activation
// with ReasonReentered. No panic or error raised during a tick escapes it.
func (s *Scheduler) Tick() {
	if s.state.ending() || s.state == Idle {
		return
	}
	defer func() {
		if v := recover(); v != nil {
			s.finish(Outcome{Kind: Failed, Err: &PanicError{Value: v, Stack: debug.Stack()}})
		}
	}()
	s.advance()
}

func (s *Scheduler) advance() {
	held := s.reg.Holds(s.serial)
	if s.state == Suspended && held {
		s.schedule(s.cfg.SuspendBackoff)
		return
	}
	if s.cancelRequested || !held {
		reason := ReasonDeactivated
		if s.cancelRequested {
			reason = s.cancelReason
		}
		s.finish(Outcome{Kind: Aborted, Reason: reason})
		return
	}

	if s.ctx == nil {
		s.ctx = s.newContext()
	}
	ctx := s.ctx
	s.steps++
	err := ctx.Step()
	if s.state == Terminated {
		// A re-entrant tick ended the activation while this step ran.
		ctx.Close()
		return
	}
	if err != nil {
		s.finish(Classify(err))
		return
	}
	if !ctx.Alive() {
		s.finish(Outcome{Kind: Completed})
		return
	}
	if s.cfg.Redraw {
		s.host.Invalidate()
	}
	s.schedule(s.cfg.TickInterval)
	s.lastTick = time.Now()
}

func (s *Scheduler) newContext() Resumable {
	if s.cb.Task != nil {
		return newCoroutine(s.cb.Task, s.serial, s.identity)
	}
	return NewExprCoroutine(s.cb.Expr)
}

// finish performs the terminal transition exactly once and schedules the
// terminal callback on the host loop.
func (s *Scheduler) finish(o Outcome) {
	if s.state.ending() {
		return
	}
	if o.Kind == Completed {
		s.state = Completing
	} else {
		s.state = Aborting
	}
	s.outcome = o
	s.gen++

	if ctx := s.ctx; ctx != nil {
		s.ctx = nil
		s.try("close context", ctx.Close)
	}
	if s.guard.Saved() {
		s.try("restore view", s.guard.Restore)
	}
	s.reg.Release(s.serial)
	if s.pushed {
		s.pushed = false
		s.try("pop tool", s.host.PopTool)
	}
	s.try("invalidate", s.host.Invalidate)
	s.state = Terminated
	s.log.Debug("tick: activation ended",
		"serial", s.serial, "outcome", o.Kind.String(), "reason", o.Reason, "steps", s.steps)

	var cb func()
	if o.Kind == Completed {
		cb = s.cb.OnComplete
	} else {
		onAbort, payload := s.cb.OnAbort, o.Payload()
		cb = func() { onAbort(payload) }
	}
	s.host.After(0, Once(cb))
}

// try runs a cleanup step, logging instead of propagating its panic so the
// remaining cleanup and the terminal callback still happen.
func (s *Scheduler) try(what string, f func()) {
	defer func() {
		if v := recover(); v != nil {
			s.log.Error("tick: cleanup panicked", "serial", s.serial, "step", what, "panic", v)
		}
	}()
	f()
}

// Activate is the host's notification that the tool became active.
func (s *Scheduler) Activate() {
	if !s.state.ending() && s.cfg.Redraw {
		s.host.Invalidate()
	}
}

// Deactivate is the host's notification that the tool was closed or
// replaced. The activation is aborted on the next tick.
func (s *Scheduler) Deactivate() {
	s.pushed = false
	s.reg.Release(s.serial)
}

// Cancel records a cancellation request, checked at the start of the next
// tick that is not suspended. An empty reason means ReasonEscape.
func (s *Scheduler) Cancel(reason string) {
	if s.state.ending() {
		return
	}
	if reason == "" {
		reason = ReasonEscape
	}
	s.cancelRequested = true
	s.cancelReason = reason
}

// Suspend stops stepping until Resume; ticks keep polling at
// Config.SuspendBackoff meanwhile. A suspended scheduler is not the host's
// top tool, so a pending cancellation waits for Resume; only Deactivate
// ends it early.
func (s *Scheduler) Suspend() {
	if s.state == Active {
		s.state = Suspended
	}
}

// Resume undoes Suspend.
func (s *Scheduler) Resume() {
	if s.state == Suspended {
		s.state = Active
	}
}

// PointerMove records the pointer position. It never triggers a tick.
func (s *Scheduler) PointerMove(flags uint32, x, y int) {
	s.pointerFlags = flags
	s.pointerX, s.pointerY = x, y
	s.pointerMoves++
}

// Draw calls the Paint option, if any.
func (s *Scheduler) Draw() {
	if s.paint == nil {
		s.log.Debug("tick: draw without paint callback", "serial", s.serial)
		return
	}
	s.paint()
}

// Pointer returns the last reported pointer position and flags.
func (s *Scheduler) Pointer() (x, y int, flags uint32) {
	return s.pointerX, s.pointerY, s.pointerFlags
}

// PointerMoves returns the number of PointerMove notifications received.
func (s *Scheduler) PointerMoves() uint64 {
	return s.pointerMoves
}

// OnComplete returns the completion callback given to New.
func (s *Scheduler) OnComplete() func() {
	return s.cb.OnComplete
}

// OnAbort returns the abort callback given to New.
func (s *Scheduler) OnAbort() func(error) {
	return s.cb.OnAbort
}

// Task returns the direct task given to New, or nil for an Expr task.
func (s *Scheduler) Task() Task {
	return s.cb.Task
}

// Identity returns Options.Identity.
func (s *Scheduler) Identity() any {
	return s.identity
}

// Serial returns the activation serial.
func (s *Scheduler) Serial() Serial {
	return s.serial
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Steps returns how many times the task has been stepped.
func (s *Scheduler) Steps() uint64 {
	return s.steps
}

// LastTick returns when the last non-final step returned.
func (s *Scheduler) LastTick() time.Time {
	return s.lastTick
}

// Outcome returns how the activation ended, once it has.
func (s *Scheduler) Outcome() (Outcome, bool) {
	return s.outcome, s.state == Terminated
}

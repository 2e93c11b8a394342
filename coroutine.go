// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"runtime"
	"runtime/debug"

	"code.hybscloud.com/atomix"
)

// Resumable is a suspension-capable execution unit.
//
// Step runs the task from its last suspension point (or from the start) until
// it suspends, returns, or fails, and reports the failure if any.
// Alive is true until the task has returned or failed.
// Close discards the unit and reclaims whatever it still holds.
type Resumable interface {
	Step() error
	Alive() bool
	Close()
}

// Task is a unit of work driven one step at a time.
// It suspends only through h.Yield. A non-nil return ends the task with that error.
type Task func(h *Handle) error

// Handle is the task's view of its execution context.
type Handle struct {
	co       *Coroutine
	serial   Serial
	identity any
}

// Yield suspends the task until the next Step.
// If the context is discarded while suspended, Yield does not return:
// the task goroutine unwinds through its deferred calls and exits.
func (h *Handle) Yield() {
	h.co.yield()
}

// Serial returns the activation serial, or zero outside a Scheduler.
func (h *Handle) Serial() Serial {
	return h.serial
}

// Identity returns the opaque identity given at construction.
func (h *Handle) Identity() any {
	return h.identity
}

// Coroutine runs a Task on a dedicated goroutine that never runs at the same
// time as its caller: Step hands control over and parks until the task hands
// it back. The worker is started lazily by the first Step.
type Coroutine struct {
	task     Task
	handle   Handle
	resume   chan struct{}
	park     chan struct{}
	done     chan struct{}
	stepping atomix.Uint32
	started  bool
	ended    bool
	closed   bool
	exiting  bool
	err      error
}

// NewCoroutine wraps task. The task does not run until the first Step.
func NewCoroutine(task Task) *Coroutine {
	return newCoroutine(task, 0, nil)
}

func newCoroutine(task Task, serial Serial, identity any) *Coroutine {
	co := &Coroutine{
		task:   task,
		resume: make(chan struct{}),
		park:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	co.handle = Handle{co: co, serial: serial, identity: identity}
	return co
}

// Step resumes the task and waits until it yields, returns, or panics.
// Returns ErrReentered if a Step is already in progress.
// Panics if the task has already ended.
func (co *Coroutine) Step() error {
	if !co.stepping.CompareAndSwap(0, 1) {
		return ErrReentered
	}
	defer co.stepping.Store(0)
	if co.ended || co.closed {
		panic("tick: step on finished coroutine")
	}
	if !co.started {
		co.started = true
		go co.run()
	} else {
		co.resume <- struct{}{}
	}
	<-co.park
	if co.ended {
		return co.err
	}
	return nil
}

// Alive reports whether the task can still be stepped.
func (co *Coroutine) Alive() bool {
	return !co.ended && !co.closed
}

// Close discards the coroutine. A suspended task is unwound and Close waits
// for its goroutine to exit. Called from inside a step in progress, Close does
// nothing; a later Close finishes the reclamation.
func (co *Coroutine) Close() {
	if co.stepping.Load() != 0 {
		return
	}
	if co.closed {
		return
	}
	co.closed = true
	if !co.started || co.ended {
		return
	}
	close(co.resume)
	<-co.done
}

func (co *Coroutine) yield() {
	if co.stepping.Load() == 0 {
		panic("tick: yield outside of step")
	}
	co.park <- struct{}{}
	if _, ok := <-co.resume; !ok {
		co.exiting = true
		runtime.Goexit()
	}
}

func (co *Coroutine) run() {
	defer close(co.done)
	returned := false
	defer func() {
		if co.exiting {
			return
		}
		if !returned {
			if v := recover(); v != nil {
				co.err = &PanicError{Value: v, Stack: debug.Stack()}
			} else {
				co.err = ErrGoexit
			}
		}
		co.ended = true
		co.park <- struct{}{}
	}()
	co.err = co.task(&co.handle)
	returned = true
}

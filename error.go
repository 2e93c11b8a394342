// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy is returned by New while another activation holds the registry.
	ErrBusy = errors.New("tick: another task is active")

	// ErrAborted matches every *AbortError via errors.Is.
	ErrAborted = errors.New("tick: task aborted")

	// ErrReentered is returned by Step when it is entered while a step of the
	// same context is still in progress, e.g. when a modal host UI opened from
	// inside the task pumps host timers.
	ErrReentered = errors.New("tick: step re-entered across host boundary")

	// ErrGoexit is the task error when a task body calls runtime.Goexit.
	ErrGoexit = errors.New("tick: task called runtime.Goexit")
)

// Abort reasons recorded by the scheduler.
const (
	ReasonEscape      = "User Escape"
	ReasonReselect    = "Tool Reselected"
	ReasonUndo        = "Undo"
	ReasonDeactivated = "Tool Deactivated"
	ReasonReentered   = "Host Re-entered Task"
)

// ConfigError reports an invalid construction argument.
// It is always returned synchronously and never reaches a callback.
type ConfigError struct {
	Arg    string
	Reason string
}

func (e *ConfigError) Error() string {
	return "tick: invalid " + e.Arg + ": " + e.Reason
}

// AbortError is the OnAbort payload for user cancellation, host tool
// replacement, and host re-entrancy.
type AbortError struct {
	Reason string
}

// Abort returns an error a task may return to end itself as aborted.
func Abort(reason string) error {
	return &AbortError{Reason: reason}
}

func (e *AbortError) Error() string {
	return "tick: aborted: " + e.Reason
}

// Is reports ErrAborted as a match.
func (e *AbortError) Is(target error) bool {
	return target == ErrAborted
}

// TaskError is the OnAbort payload for any other condition raised by the
// task body. The raised error is carried unmodified.
type TaskError struct {
	Err error
}

func (e *TaskError) Error() string {
	return "tick: task failed: " + e.Err.Error()
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking task or tick,
// together with the stack at the point of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

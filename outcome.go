// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import "errors"

// Kind tags an Outcome.
type Kind uint8

const (
	Completed Kind = iota
	Aborted
	Failed
)

func (k Kind) String() string {
	switch k {
	case Completed:
		return "Completed"
	case Aborted:
		return "Aborted"
	case Failed:
		return "Failed"
	}
	return "Kind(?)"
}

// Outcome is how one activation ended.
// Reason is set for Aborted, Err for Failed.
type Outcome struct {
	Kind   Kind
	Reason string
	Err    error
}

// Classify maps the condition that ended a task to an Outcome.
// A nil error is Completed. ErrReentered and *AbortError are Aborted;
// everything else is Failed and carried opaquely.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: Completed}
	}
	if errors.Is(err, ErrReentered) {
		return Outcome{Kind: Aborted, Reason: ReasonReentered}
	}
	var ae *AbortError
	if errors.As(err, &ae) {
		return Outcome{Kind: Aborted, Reason: ae.Reason}
	}
	return Outcome{Kind: Failed, Err: err}
}

// Payload returns the value handed to OnAbort, or nil for Completed.
func (o Outcome) Payload() error {
	switch o.Kind {
	case Aborted:
		return &AbortError{Reason: o.Reason}
	case Failed:
		return &TaskError{Err: o.Err}
	}
	return nil
}

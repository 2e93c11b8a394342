// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/kont"
)

// ExprCoroutine steps an Expr-world task on the caller's goroutine, one
// Yield effect at a time. No goroutine is spawned.
type ExprCoroutine struct {
	expr     kont.Expr[struct{}]
	susp     *kont.Suspension[struct{}]
	stepping atomix.Uint32
	started  bool
	ended    bool
}

// NewExprCoroutine wraps protocol. Nothing is evaluated until the first Step.
func NewExprCoroutine(protocol kont.Expr[struct{}]) *ExprCoroutine {
	return &ExprCoroutine{expr: protocol}
}

// Step evaluates the task until its next Yield or completion.
//
// The first Step evaluates from the start; every later Step first resumes the
// pending Yield. Error effects end the task with their error. Any other
// effect panics. Returns ErrReentered if a Step is already in progress.
func (c *ExprCoroutine) Step() error {
	if !c.stepping.CompareAndSwap(0, 1) {
		return ErrReentered
	}
	if c.ended {
		c.stepping.Store(0)
		panic("tick: step on finished coroutine")
	}
	clean := false
	defer func() {
		if !clean {
			c.susp = nil
			c.ended = true
		}
		c.stepping.Store(0)
	}()
	if !c.started {
		c.started = true
		_, c.susp = kont.StepExpr(c.expr)
		c.expr = kont.Expr[struct{}]{}
	} else {
		_, c.susp = c.susp.Resume(yieldResumed)
	}
	for c.susp != nil {
		switch op := c.susp.Op().(type) {
		case Yield:
			clean = true
			return nil
		case errorDispatcher:
			var ctx kont.ErrorContext[error]
			v, _ := op.DispatchError(&ctx)
			if ctx.HasErr {
				c.susp.Discard()
				c.susp = nil
				c.ended = true
				clean = true
				return ctx.Err
			}
			_, c.susp = c.susp.Resume(v)
		default:
			c.susp.Discard()
			c.susp = nil
			c.ended = true
			panic("tick: unhandled effect in Step")
		}
	}
	c.ended = true
	clean = true
	return nil
}

// Alive reports whether the task can still be stepped.
func (c *ExprCoroutine) Alive() bool {
	return !c.ended
}

// Close discards the pending suspension, if any. Called from inside a step in
// progress, Close leaves the suspension to a later Close.
func (c *ExprCoroutine) Close() {
	if c.stepping.Load() != 0 {
		return
	}
	if c.susp != nil {
		c.susp.Discard()
		c.susp = nil
	}
	c.ended = true
}

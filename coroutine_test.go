// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick_test

import (
	"errors"
	"runtime"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/tick"
)

func TestCoroutineStepAlive(t *testing.T) {
	var trace []int
	co := tick.NewCoroutine(func(h *tick.Handle) error {
		for i := range 3 {
			trace = append(trace, i)
			h.Yield()
		}
		return nil
	})
	if !co.Alive() {
		t.Fatal("new coroutine not alive")
	}
	if len(trace) != 0 {
		t.Fatal("task ran before the first Step")
	}

	steps := 0
	for co.Alive() {
		if err := co.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		steps++
		if co.Alive() && len(trace) != steps {
			t.Fatalf("step %d ran %d iterations", steps, len(trace))
		}
	}
	if steps != 4 {
		t.Fatalf("steps got %d, want 4", steps)
	}
	co.Close()
}

func TestCoroutineStepAfterEndPanics(t *testing.T) {
	co := tick.NewCoroutine(func(*tick.Handle) error { return nil })
	if err := co.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || msg != "tick: step on finished coroutine" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	co.Step()
}

func TestCoroutineReturnsError(t *testing.T) {
	want := errors.New("stalemate")
	co := tick.NewCoroutine(func(h *tick.Handle) error {
		h.Yield()
		return want
	})
	if err := tick.Exec(co); !errors.Is(err, want) {
		t.Fatalf("Exec got %v, want %v", err, want)
	}
	if co.Alive() {
		t.Fatal("coroutine alive after error")
	}
}

func TestCoroutinePanicIsError(t *testing.T) {
	co := tick.NewCoroutine(func(*tick.Handle) error {
		panic(errors.New("bad square"))
	})
	err := co.Step()
	var pe *tick.PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("Step got %v, want PanicError", err)
	}
	if pe.Unwrap() == nil || pe.Unwrap().Error() != "bad square" {
		t.Fatalf("panic value got %v", pe.Value)
	}
	if len(pe.Stack) == 0 {
		t.Fatal("panic stack not captured")
	}
}

func TestCoroutineGoexit(t *testing.T) {
	co := tick.NewCoroutine(func(*tick.Handle) error {
		runtime.Goexit()
		return nil
	})
	if err := co.Step(); !errors.Is(err, tick.ErrGoexit) {
		t.Fatalf("Step got %v, want ErrGoexit", err)
	}
}

func TestCoroutineCloseUnwinds(t *testing.T) {
	released := false
	after := false
	co := tick.NewCoroutine(func(h *tick.Handle) error {
		defer func() { released = true }()
		h.Yield()
		after = true
		return nil
	})
	if err := co.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	co.Close()
	if !released {
		t.Fatal("deferred calls did not run on Close")
	}
	if after {
		t.Fatal("task continued past Yield after Close")
	}
	if co.Alive() {
		t.Fatal("closed coroutine alive")
	}
	co.Close()
}

func TestCoroutineCloseUnstarted(t *testing.T) {
	ran := false
	co := tick.NewCoroutine(func(*tick.Handle) error {
		ran = true
		return nil
	})
	co.Close()
	if ran || co.Alive() {
		t.Fatal("unstarted coroutine ran or stayed alive after Close")
	}
}

func TestCoroutineReentrantStep(t *testing.T) {
	var co *tick.Coroutine
	var inner error
	co = tick.NewCoroutine(func(h *tick.Handle) error {
		inner = co.Step()
		h.Yield()
		return nil
	})
	if err := tick.Exec(co); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !errors.Is(inner, tick.ErrReentered) {
		t.Fatalf("re-entrant Step got %v, want ErrReentered", inner)
	}
}

func TestExprCoroutineSteps(t *testing.T) {
	co := tick.NewExprCoroutine(
		tick.ExprYieldThen(tick.ExprYieldThen(tick.ExprDone())),
	)
	steps := 0
	for co.Alive() {
		if err := co.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		steps++
	}
	if steps != 3 {
		t.Fatalf("steps got %d, want 3", steps)
	}
}

func TestExprCoroutineThrow(t *testing.T) {
	want := errors.New("checkmate")
	co := tick.NewExprCoroutine(tick.ExprYieldThen(tick.ExprFail(want)))
	if err := co.Step(); err != nil {
		t.Fatalf("first Step: %v", err)
	}
	if err := co.Step(); !errors.Is(err, want) {
		t.Fatalf("second Step got %v, want %v", err, want)
	}
	if co.Alive() {
		t.Fatal("coroutine alive after throw")
	}
}

func TestExprCoroutineUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[struct{}] }
	co := tick.NewExprCoroutine(kont.ExprPerform(bogus{}))
	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || msg != "tick: unhandled effect in Step" {
			t.Fatalf("unexpected panic: %v", r)
		}
		if co.Alive() {
			t.Fatal("coroutine alive after unhandled effect")
		}
	}()
	co.Step()
}

func TestExprCoroutineClose(t *testing.T) {
	co := tick.NewExprCoroutine(tick.ExprYieldThen(tick.ExprDone()))
	if err := co.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	co.Close()
	if co.Alive() {
		t.Fatal("closed coroutine alive")
	}
}

func TestExecCont(t *testing.T) {
	n := 0
	task := tick.YieldLoop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		n = i
		if i < 5 {
			return tick.Continue(i + 1)
		}
		return tick.Break[int]()
	})
	if err := tick.Exec(tick.NewExprCoroutine(tick.Reify(task))); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if n != 5 {
		t.Fatalf("loop reached %d, want 5", n)
	}
}

func TestExecContFail(t *testing.T) {
	want := errors.New("resign")
	task := tick.YieldThen(tick.Fail(want))
	if err := tick.Exec(tick.NewExprCoroutine(tick.Reify(task))); !errors.Is(err, want) {
		t.Fatalf("Exec got %v, want %v", err, want)
	}
}

func TestReflectRoundTrip(t *testing.T) {
	expr := tick.ExprYieldThen(tick.ExprYieldThen(tick.ExprDone()))
	co := tick.NewExprCoroutine(tick.Reify(tick.Reflect(expr)))
	steps := 0
	for co.Alive() {
		if err := co.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		steps++
	}
	if steps != 3 {
		t.Fatalf("steps got %d, want 3", steps)
	}
}

func TestCoroutineCloseInsideStep(t *testing.T) {
	var co *tick.Coroutine
	released := false
	co = tick.NewCoroutine(func(h *tick.Handle) error {
		defer func() { released = true }()
		co.Close()
		h.Yield()
		return nil
	})
	if err := co.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !co.Alive() || released {
		t.Fatal("Close inside a step took effect before the step returned")
	}
	co.Close()
	if co.Alive() || !released {
		t.Fatal("later Close did not reclaim the coroutine")
	}
}

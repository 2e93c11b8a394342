// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick_test

import (
	"testing"
	"time"

	"code.hybscloud.com/tick"
)

// fakeTimer is a pending fakeHost callback.
type fakeTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

// fakeHost is a deterministic tick.Host with a virtual clock.
// Timers fire only when the test calls next or drain.
type fakeHost struct {
	now         time.Duration
	seq         int
	timers      []fakeTimer
	delays      []time.Duration
	tools       []tick.Tool
	pushes      int
	pops        int
	invalidates int
	view        tick.View
	bounds      tick.Bounds
	viewSets    []tick.View
}

var homeView = tick.View{
	Eye:         tick.Vec3{X: 10, Y: -10, Z: 8},
	Target:      tick.Vec3{},
	Up:          tick.Vec3{Z: 1},
	Perspective: true,
	FOV:         35,
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		view: homeView,
		bounds: tick.Bounds{
			Min: tick.Vec3{X: -2, Y: -2, Z: 0},
			Max: tick.Vec3{X: 2, Y: 2, Z: 3},
		},
	}
}

func (h *fakeHost) PushTool(t tick.Tool) {
	h.pushes++
	h.tools = append(h.tools, t)
	t.Activate()
}

func (h *fakeHost) PopTool() {
	if len(h.tools) == 0 {
		return
	}
	h.pops++
	top := h.tools[len(h.tools)-1]
	h.tools = h.tools[:len(h.tools)-1]
	top.Deactivate()
}

// replace deactivates every tool, as a host switching to another tool does.
func (h *fakeHost) replace() {
	for len(h.tools) > 0 {
		top := h.tools[len(h.tools)-1]
		h.tools = h.tools[:len(h.tools)-1]
		top.Deactivate()
	}
}

func (h *fakeHost) Invalidate() { h.invalidates++ }

func (h *fakeHost) After(d time.Duration, fn func()) {
	h.seq++
	h.delays = append(h.delays, d)
	h.timers = append(h.timers, fakeTimer{at: h.now + d, seq: h.seq, fn: fn})
}

func (h *fakeHost) View() tick.View { return h.view }

func (h *fakeHost) SetView(v tick.View) {
	h.view = v
	h.viewSets = append(h.viewSets, v)
}

func (h *fakeHost) Bounds() tick.Bounds { return h.bounds }

// next fires the earliest pending timer, advancing the clock to it.
// Reports false when nothing is pending.
func (h *fakeHost) next() bool {
	if len(h.timers) == 0 {
		return false
	}
	best := 0
	for i, t := range h.timers[1:] {
		b := h.timers[best]
		if t.at < b.at || (t.at == b.at && t.seq < b.seq) {
			best = i + 1
		}
	}
	t := h.timers[best]
	h.timers = append(h.timers[:best], h.timers[best+1:]...)
	h.now = t.at
	t.fn()
	return true
}

// drain fires timers until none are pending, failing after limit firings.
func (h *fakeHost) drain(tb testing.TB, limit int) int {
	tb.Helper()
	n := 0
	for h.next() {
		n++
		if n > limit {
			tb.Fatalf("host did not settle after %d timers", limit)
		}
	}
	return n
}

// recorder counts terminal callbacks.
type recorder struct {
	completes int
	aborts    []error
}

func (r *recorder) callbacks(task tick.Task) tick.Callbacks {
	return tick.Callbacks{
		OnComplete: func() { r.completes++ },
		OnAbort:    func(err error) { r.aborts = append(r.aborts, err) },
		Task:       task,
	}
}

func (r *recorder) terminals() int {
	return r.completes + len(r.aborts)
}

// yieldForever never returns on its own.
func yieldForever(h *tick.Handle) error {
	for {
		h.Yield()
	}
}

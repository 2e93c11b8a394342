// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loop

import (
	"container/heap"
	"context"
	"errors"
	"log/slog"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/tick"
)

// defaultInboxCapacity is the bounded capacity of the Post queue.
const defaultInboxCapacity = 64

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("loop: already running")

// Config sets up a Loop.
type Config struct {
	// InboxCapacity bounds the Post queue. Zero means 64.
	InboxCapacity int
	// View and Bounds are the initial view state.
	View   tick.View
	Bounds tick.Bounds
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Stats are counters of work the loop has done.
type Stats struct {
	Fired   uint32
	Redraws uint32
	Posts   uint32
}

// Loop is a host event loop. Apart from Post, Stop and Stats, its methods
// must be called from the goroutine running Run, or before Run starts.
type Loop struct {
	log    *slog.Logger
	now    func() time.Time
	timers timerHeap
	batch  []*timer
	seq    uint64
	inbox  lfq.SPSC[func()]
	tools  []tick.Tool
	view   tick.View
	bounds tick.Bounds
	dirty  bool

	running atomix.Uint32
	stopped atomix.Uint32
	fired   atomix.Uint32
	redraws atomix.Uint32
	posts   atomix.Uint32
}

// New creates a loop. A nil logger discards everything.
func New(cfg Config, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.InboxCapacity <= 0 {
		cfg.InboxCapacity = defaultInboxCapacity
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	l := &Loop{
		log:    logger,
		now:    cfg.Clock,
		view:   cfg.View,
		bounds: cfg.Bounds,
	}
	l.inbox.Init(cfg.InboxCapacity)
	return l
}

// Run drives the loop on the calling goroutine until Stop is called or ctx
// is done. Turns without progress wait with adaptive backoff.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(0, 1) {
		return ErrRunning
	}
	defer l.running.Store(0)
	var bo iox.Backoff
	for {
		if l.stopped.Load() != 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.Turn() {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
}

// Turn runs one iteration: drain the inbox, fire the timers that were due
// when the turn began, then redraw if invalidated. Timers scheduled during
// the turn wait for the next one. Reports whether anything ran.
func (l *Loop) Turn() bool {
	progress := false
	for {
		fn, err := l.inbox.Dequeue()
		if err != nil {
			break
		}
		fn()
		progress = true
	}

	now := l.now()
	for len(l.timers) > 0 && !l.timers[0].when.After(now) {
		l.batch = append(l.batch, heap.Pop(&l.timers).(*timer))
	}
	for i, t := range l.batch {
		l.batch[i] = nil
		l.fired.Add(1)
		t.fn()
		progress = true
	}
	l.batch = l.batch[:0]

	if l.dirty {
		l.dirty = false
		if top := l.Top(); top != nil {
			top.Draw()
		}
		l.redraws.Add(1)
		progress = true
	}
	return progress
}

// Stop makes Run return after the current turn. Safe from any goroutine.
func (l *Loop) Stop() {
	l.stopped.Store(1)
}

// Post hands fn to the loop goroutine. Post is non-blocking and
// single-producer: at most one goroutine may call it.
// Returns iox.ErrWouldBlock when the inbox is full.
func (l *Loop) Post(fn func()) error {
	if err := l.inbox.Enqueue(&fn); err != nil {
		return err
	}
	l.posts.Add(1)
	return nil
}

// Pending returns the number of scheduled timers.
func (l *Loop) Pending() int {
	return len(l.timers)
}

// Stats returns the loop counters. Safe from any goroutine.
func (l *Loop) Stats() Stats {
	return Stats{
		Fired:   l.fired.Load(),
		Redraws: l.redraws.Load(),
		Posts:   l.posts.Load(),
	}
}

// After implements tick.Host. fn runs on a later turn, never synchronously.
func (l *Loop) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	l.seq++
	heap.Push(&l.timers, &timer{when: l.now().Add(d), seq: l.seq, fn: fn})
}

// Invalidate implements tick.Host. Redraws are coalesced to one per turn.
func (l *Loop) Invalidate() {
	l.dirty = true
}

// View implements tick.Host.
func (l *Loop) View() tick.View {
	return l.view
}

// SetView implements tick.Host.
func (l *Loop) SetView(v tick.View) {
	l.view = v
	l.dirty = true
}

// Bounds implements tick.Host.
func (l *Loop) Bounds() tick.Bounds {
	return l.bounds
}

// SetBounds replaces the content bounds.
func (l *Loop) SetBounds(b tick.Bounds) {
	l.bounds = b
}

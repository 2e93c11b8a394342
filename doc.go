// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package tick runs one long-running task as a sequence of short steps
// interleaved with a host event loop.
//
// The host never blocks while the task runs. The task is written as
// straight-line code with explicit suspension points, and a [Scheduler]
// re-enters it only when the host's one-shot timer invites it.
//
// # Architecture
//
//   - Context: [Resumable] wraps a task. [Coroutine] runs a plain [Task] behind a
//     goroutine handshake; [ExprCoroutine] steps a [code.hybscloud.com/kont.Expr]
//     one [Yield] effect at a time.
//   - Scheduling: [Scheduler] owns the context and the state machine, and asks the
//     [Host] for every next tick through [Host.After].
//   - Exclusivity: [Registry] admits at most one active [Scheduler]; a second
//     [New] fails fast with [ErrBusy].
//   - Termination: [Classify] maps every exit into an [Outcome]; exactly one of
//     OnComplete or OnAbort fires, always deferred through [Once].
//   - View: the host's view is saved on entry and restored exactly once on exit
//     when [Config.ReduceRedraw] is set.
//
// # Task Topologies
//
//   - Direct: func(h *Handle) error, suspending with [Handle.Yield].
//   - Cont-world: [YieldThen], [YieldLoop]; bridge with [Reify].
//   - Expr-world: [ExprYieldThen]; kont error effects end the task with an error.
//
// # Example
//
//	reg := tick.NewRegistry()
//	s, err := tick.New(reg, host, tick.Callbacks{
//		OnComplete: func() { log.Print("done") },
//		OnAbort:    func(err error) { log.Print(err) },
//		Task: func(h *tick.Handle) error {
//			for i := range 100 {
//				work(i)
//				h.Yield()
//			}
//			return nil
//		},
//	}, tick.Options{})
package tick

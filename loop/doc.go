// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loop is a single-threaded host event loop for [code.hybscloud.com/tick].
//
// A [Loop] implements [code.hybscloud.com/tick.Host]: one-shot timers, a tool
// stack, coalesced redraws, and view state. Everything runs on the goroutine
// that calls [Loop.Run].
//
// # Architecture
//
//   - Timers: a min-heap ordered by deadline, then by scheduling order. Each turn
//     fires only the timers due when the turn began.
//   - Inbox: a bounded lock-free SPSC queue via [code.hybscloud.com/lfq]. [Loop.Post]
//     returns [code.hybscloud.com/iox.ErrWouldBlock] on backpressure.
//   - Idle: adaptive backoff via [code.hybscloud.com/iox.Backoff] when a turn makes
//     no progress.
package loop

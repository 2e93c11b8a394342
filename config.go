// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import "time"

// defaultSuspendBackoff is how often a suspended scheduler re-polls the host.
const defaultSuspendBackoff = 250 * time.Millisecond

// Config tunes a Scheduler.
type Config struct {
	// Redraw asks the host to invalidate its view after every step.
	Redraw bool
	// ReduceRedraw swaps the host view for a content-free one while the task
	// runs and restores it afterwards.
	ReduceRedraw bool
	// TickInterval is the delay between steps. Zero reschedules immediately.
	TickInterval time.Duration
	// SuspendBackoff is the re-poll interval while suspended.
	SuspendBackoff time.Duration
}

// DefaultConfig returns the configuration used when Options.Config is nil.
func DefaultConfig() Config {
	return Config{
		Redraw:         true,
		SuspendBackoff: defaultSuspendBackoff,
	}
}

func (c Config) normalized() Config {
	if c.TickInterval < 0 {
		c.TickInterval = 0
	}
	if c.SuspendBackoff <= 0 {
		c.SuspendBackoff = defaultSuspendBackoff
	}
	return c
}

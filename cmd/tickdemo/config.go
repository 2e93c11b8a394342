// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"code.hybscloud.com/tick"
	"code.hybscloud.com/tick/loop"
)

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	Identity string `toml:"identity"`
	Limit    int    `toml:"limit"`
	Batch    int    `toml:"batch"`

	Scheduler struct {
		Redraw           bool  `toml:"redraw"`
		ReduceRedraw     bool  `toml:"reduce_redraw"`
		TickIntervalMS   int64 `toml:"tick_interval_ms"`
		SuspendBackoffMS int64 `toml:"suspend_backoff_ms"`
	} `toml:"scheduler"`

	Loop struct {
		InboxCapacity int `toml:"inbox_capacity"`
	} `toml:"loop"`
}

func defaultFileConfig() fileConfig {
	var fc fileConfig
	fc.Limit = 200000
	fc.Batch = 1000
	fc.Scheduler.Redraw = true
	fc.Scheduler.SuspendBackoffMS = 250
	return fc
}

// loadConfig reads path over the defaults. An empty path keeps the defaults.
func loadConfig(path string) (fileConfig, error) {
	fc := defaultFileConfig()
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	if fc.Limit < 2 {
		return fc, fmt.Errorf("config %s: limit must be at least 2", path)
	}
	if fc.Batch < 1 {
		return fc, fmt.Errorf("config %s: batch must be positive", path)
	}
	return fc, nil
}

func (fc fileConfig) tick() tick.Config {
	return tick.Config{
		Redraw:         fc.Scheduler.Redraw,
		ReduceRedraw:   fc.Scheduler.ReduceRedraw,
		TickInterval:   time.Duration(fc.Scheduler.TickIntervalMS) * time.Millisecond,
		SuspendBackoff: time.Duration(fc.Scheduler.SuspendBackoffMS) * time.Millisecond,
	}
}

func (fc fileConfig) loop() loop.Config {
	return loop.Config{
		InboxCapacity: fc.Loop.InboxCapacity,
		Bounds: tick.Bounds{
			Min: tick.Vec3{X: -1, Y: -1, Z: -1},
			Max: tick.Vec3{X: 1, Y: 1, Z: 1},
		},
		View: tick.View{
			Eye:         tick.Vec3{X: 5, Y: 5, Z: 5},
			Up:          tick.Vec3{Z: 1},
			Perspective: true,
			FOV:         35,
		},
	}
}

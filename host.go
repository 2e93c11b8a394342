// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"math"
	"time"
)

// Tool receives lifecycle notifications from the host.
// *Scheduler implements Tool; the host calls it only from its own loop.
type Tool interface {
	Activate()
	Deactivate()
	Cancel(reason string)
	Suspend()
	Resume()
	PointerMove(flags uint32, x, y int)
	Draw()
}

// Host is the event loop a Scheduler runs inside.
//
// After must never run fn synchronously: it schedules fn as a one-shot
// callback on the host loop after at least d.
type Host interface {
	PushTool(t Tool)
	PopTool()
	Invalidate()
	After(d time.Duration, fn func())
	View() View
	SetView(v View)
	Bounds() Bounds
}

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X, Y, Z float64
}

// View holds camera-like view parameters.
type View struct {
	Eye, Target, Up Vec3
	Perspective     bool
	FOV             float64
}

// Bounds is an axis-aligned box around the host's content.
type Bounds struct {
	Min, Max Vec3
}

// Center returns the midpoint of b.
func (b Bounds) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Diagonal returns the length of b's diagonal.
func (b Bounds) Diagonal() float64 {
	dx, dy, dz := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y, b.Max.Z-b.Min.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

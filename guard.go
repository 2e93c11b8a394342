// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

const (
	guardEmpty uint8 = iota
	guardSaved
	guardRestored
)

// viewGuard owns the host view for one activation.
type viewGuard struct {
	host  Host
	saved View
	state uint8
}

// Save captures the host view and replaces it with one that looks away from
// the content, so redraws while the task runs cost little.
func (g *viewGuard) Save() {
	if g.state != guardEmpty {
		panic("tick: view saved twice")
	}
	g.saved = g.host.View()
	g.state = guardSaved
	g.host.SetView(cheapView(g.host.Bounds(), g.saved))
}

// Restore re-applies the saved view verbatim.
func (g *viewGuard) Restore() {
	switch g.state {
	case guardEmpty:
		panic("tick: view restored before save")
	case guardRestored:
		panic("tick: view restored twice")
	}
	g.state = guardRestored
	g.host.SetView(g.saved)
}

// Saved reports whether Save ran and Restore has not.
func (g *viewGuard) Saved() bool {
	return g.state == guardSaved
}

// cheapView places the eye above b and points it straight up.
func cheapView(b Bounds, v View) View {
	c := b.Center()
	eye := Vec3{X: c.X, Y: c.Y, Z: b.Max.Z + b.Diagonal() + 1}
	return View{
		Eye:         eye,
		Target:      Vec3{X: eye.X, Y: eye.Y, Z: eye.Z + 1},
		Up:          Vec3{Y: 1},
		Perspective: v.Perspective,
		FOV:         v.FOV,
	}
}

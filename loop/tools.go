// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loop

import "code.hybscloud.com/tick"

// PushTool implements tick.Host.
// The previous top tool is suspended, then t is activated.
func (l *Loop) PushTool(t tick.Tool) {
	if top := l.Top(); top != nil {
		top.Suspend()
	}
	l.tools = append(l.tools, t)
	t.Activate()
}

// PopTool implements tick.Host.
// The top tool is deactivated and the one below it, if any, resumed.
func (l *Loop) PopTool() {
	n := len(l.tools)
	if n == 0 {
		return
	}
	top := l.tools[n-1]
	l.tools[n-1] = nil
	l.tools = l.tools[:n-1]
	top.Deactivate()
	if next := l.Top(); next != nil {
		next.Resume()
	}
}

// Select replaces the whole tool stack with t, as a user picking another
// tool does. Every stacked tool is cancelled with tick.ReasonReselect and
// deactivated, topmost first.
// A nil t leaves the stack empty.
func (l *Loop) Select(t tick.Tool) {
	for len(l.tools) > 0 {
		n := len(l.tools)
		top := l.tools[n-1]
		l.tools[n-1] = nil
		l.tools = l.tools[:n-1]
		top.Cancel(tick.ReasonReselect)
		top.Deactivate()
	}
	if t != nil {
		l.tools = append(l.tools, t)
		t.Activate()
	}
}

// Top returns the active tool, or nil.
func (l *Loop) Top() tick.Tool {
	if n := len(l.tools); n > 0 {
		return l.tools[n-1]
	}
	return nil
}

// Depth returns the number of stacked tools.
func (l *Loop) Depth() int {
	return len(l.tools)
}

// Escape sends the user's escape key to the active tool.
func (l *Loop) Escape() {
	if top := l.Top(); top != nil {
		top.Cancel(tick.ReasonEscape)
	}
}

// Move sends a pointer move to the active tool.
func (l *Loop) Move(flags uint32, x, y int) {
	if top := l.Top(); top != nil {
		top.PointerMove(flags, x, y)
	}
}

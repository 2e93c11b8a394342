// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"code.hybscloud.com/kont"
)

// Yield is the effect operation for suspending an Expr-world task.
// Perform(Yield{}) ends the current step; the task resumes on the next one.
type Yield struct {
	kont.Phantom[struct{}]
}

// yieldResumed is the pre-boxed resume value for Yield, avoiding a
// per-step heap escape when boxing struct{}{} into kont.Resumed.
var yieldResumed kont.Resumed = struct{}{}

// errorDispatcher is the structural interface of kont error effects.
type errorDispatcher interface {
	DispatchError(ctx *kont.ErrorContext[error]) (kont.Resumed, bool)
}

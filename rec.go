// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"code.hybscloud.com/kont"
)

// YieldLoop runs a recursive Cont-world task, suspending between iterations.
// step returns Left(nextState) to yield and continue, or Right to finish.
func YieldLoop[S any](initial S, step func(S) kont.Eff[kont.Either[S, struct{}]]) kont.Eff[struct{}] {
	return kont.Bind(step(initial), func(e kont.Either[S, struct{}]) kont.Eff[struct{}] {
		if left, ok := e.GetLeft(); ok {
			return YieldThen(YieldLoop(left, step))
		}
		return Done()
	})
}

// Continue is the Left result of a YieldLoop step.
func Continue[S any](next S) kont.Eff[kont.Either[S, struct{}]] {
	return kont.Pure(kont.Left[S, struct{}](next))
}

// Break is the Right result of a YieldLoop step.
func Break[S any]() kont.Eff[kont.Either[S, struct{}]] {
	return kont.Pure(kont.Right[S](struct{}{}))
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"code.hybscloud.com/kont"
)

// YieldThen suspends for one step and then continues with next.
// Fuses Perform(Yield{}) + Then.
func YieldThen[B any](next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Yield{}), next)
}

// Done is the completed Cont-world task.
func Done() kont.Eff[struct{}] {
	return kont.Pure(struct{}{})
}

// Fail ends a Cont-world task with err.
// Fuses ThrowError for the error type the scheduler understands.
func Fail(err error) kont.Eff[struct{}] {
	return kont.ThrowError[error, struct{}](err)
}

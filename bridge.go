// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world task to Expr-world.
// The resulting Expr can be stepped by an ExprCoroutine or given to New.
func Reify(m kont.Eff[struct{}]) kont.Expr[struct{}] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world task to Cont-world.
func Reflect(m kont.Expr[struct{}]) kont.Eff[struct{}] {
	return kont.Reflect(m)
}

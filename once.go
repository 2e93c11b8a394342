// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import "code.hybscloud.com/atomix"

// Once wraps fn so that only the first call runs it.
//
// The fired flag is set before fn runs: a call re-entering from inside fn,
// or a host firing the same timer entry twice, returns immediately.
// Unlike sync.OnceFunc, re-entrant calls never block.
func Once(fn func()) func() {
	var fired atomix.Uint32
	return func() {
		if fired.Add(1) != 1 {
			return
		}
		fn()
	}
}

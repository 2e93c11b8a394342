// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import (
	"fmt"
	"reflect"

	"code.hybscloud.com/kont"
)

// Adapt builds Callbacks from untyped callables, as handed over by a plugin
// or scripting bridge. Arity mismatches fail here, synchronously, with a
// *ConfigError.
//
// Accepted forms:
//   - onComplete: func()
//   - onAbort: func(error), func(any)
//   - task: func(*Handle), func(*Handle) error, Task,
//     kont.Expr[struct{}], kont.Eff[struct{}]
func Adapt(onComplete, onAbort, task any) (Callbacks, error) {
	var cb Callbacks

	switch f := onComplete.(type) {
	case func():
		cb.OnComplete = f
	default:
		return Callbacks{}, arityError("onComplete", onComplete, 0)
	}

	switch f := onAbort.(type) {
	case func(error):
		cb.OnAbort = f
	case func(any):
		cb.OnAbort = func(err error) { f(err) }
	default:
		return Callbacks{}, arityError("onAbort", onAbort, 1)
	}

	switch f := task.(type) {
	case Task:
		cb.Task = f
	case func(*Handle) error:
		cb.Task = f
	case func(*Handle):
		cb.Task = func(h *Handle) error {
			f(h)
			return nil
		}
	case kont.Expr[struct{}]:
		cb.Expr = f
	case kont.Eff[struct{}]:
		cb.Expr = Reify(f)
	default:
		return Callbacks{}, arityError("task", task, 1)
	}
	return cb, nil
}

func arityError(arg string, v any, want int) error {
	if v == nil {
		return &ConfigError{Arg: arg, Reason: "nil"}
	}
	t := reflect.TypeOf(v)
	if t.Kind() != reflect.Func {
		return &ConfigError{Arg: arg, Reason: fmt.Sprintf("not callable: %s", t)}
	}
	if t.NumIn() != want {
		return &ConfigError{Arg: arg, Reason: fmt.Sprintf("arity %d, want %d", t.NumIn(), want)}
	}
	return &ConfigError{Arg: arg, Reason: fmt.Sprintf("unsupported signature %s", t)}
}

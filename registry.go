// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import "code.hybscloud.com/atomix"

// Registry is the process-wide activation slot shared by schedulers.
// At most one activation serial holds it at any time.
// Construct one per process (or per test) and pass it to every [New].
type Registry struct {
	holder atomix.Uint32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// TryAcquire claims the registry for s.
// Returns false without waiting if another serial already holds it.
func (r *Registry) TryAcquire(s Serial) bool {
	if s == 0 {
		return false
	}
	return r.holder.CompareAndSwap(0, s)
}

// Release gives up the registry if s holds it.
// Releasing an unheld registry, or one held by another serial, is a no-op.
func (r *Registry) Release(s Serial) bool {
	if s == 0 {
		return false
	}
	return r.holder.CompareAndSwap(s, 0)
}

// Holds reports whether s currently holds the registry.
func (r *Registry) Holds(s Serial) bool {
	return s != 0 && r.holder.Load() == s
}

// Active reports whether any activation holds the registry.
func (r *Registry) Active() bool {
	return r.holder.Load() != 0
}

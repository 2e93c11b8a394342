// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

// Exec steps r to completion on the calling goroutine, without a host.
// Returns the error that ended the task, or nil when it returned normally.
// r is closed on return.
func Exec(r Resumable) error {
	defer r.Close()
	for r.Alive() {
		if err := r.Step(); err != nil {
			return err
		}
	}
	return nil
}

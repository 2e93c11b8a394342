// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tick

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing activation identifier.
// Each successful or attempted call to New draws the next value.
// The zero Serial is never assigned and marks an unheld [Registry].
type Serial = uint32

// counter is the global monotonic counter for activation serials.
var counter atomix.Uint32

// nextSerial returns the next serial, skipping zero when the counter wraps.
func nextSerial() Serial {
	for {
		if s := counter.Add(1); s != 0 {
			return s
		}
	}
}

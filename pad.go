// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

// pad is cache line padding used to keep independently-written hot fields
// (bottom, age, offered) on their own cache lines and out of each other's
// way under contention.
type pad [64]byte

// roundToPow2 rounds n up to the next power of 2, minimum 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

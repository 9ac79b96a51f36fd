// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsteal

import "code.hybscloud.com/iox"

// ErrEmpty indicates a queue-shaped operation found nothing to return.
//
// ErrEmpty is a control flow signal, not a failure — the caller should
// retry, steal elsewhere, or offer termination, rather than propagating
// the error. Deque[E]'s own Push/PopLocal/PopGlobal stay boolean per their
// total, error-free contract (no exceptional channel at all); ErrEmpty
// exists only for the error-returning convenience wrappers this module
// layers on top of that contract (see Overflow.RetrieveErr).
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency with
// the rest of this dependency's error vocabulary.
var ErrEmpty = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Allocation failures returned by Deque.Init are real failures and report
// false here. Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

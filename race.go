// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package wsteal

// RaceEnabled is true when the race detector is active.
// Used by tests to skip or shorten concurrent Deque/DequeSet/Terminator
// tests that trigger false positives from cross-variable acquire/release
// ordering between bottom and age.
const RaceEnabled = true

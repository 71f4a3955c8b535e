// Copyright (c) 2026 The settings authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package internal

import (
	"reflect"
	"sync/atomic"
)

// NoCopy guards a handle whose methods must all operate on the same value,
// like settings.Settings whose Value hands out a pointer into itself.
// Embed it by value and call Check at the start of every method.
//
// The first Check records the address of the guard. A handle copied by value
// after that carries the recorded address of the original, so Check on the
// copy panics instead of silently editing a detached value.
// A handle copied before first use is a fresh guard and is not reported.
type NoCopy[T any] struct {
	self atomic.Pointer[NoCopy[T]]
}

// Check panics if the receiver is a copy of a NoCopy already in use.
func (c *NoCopy[T]) Check() {
	if c.self.CompareAndSwap(nil, c) || c.self.Load() == c {
		return
	}

	panic(reflect.TypeFor[T]().String() + " must not be copied after first use")
}

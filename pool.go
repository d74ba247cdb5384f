// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "sync"

// Continuation frames themselves cannot be pooled: Kernel continuations
// are first-class and undelimited, so any frame in the chain may be
// captured by call/cc and invoked arbitrarily long after its
// PlugReduce returns. Reusing that memory for a later combination
// would silently corrupt an already-captured continuation. Pooling
// instead targets the narrower, genuinely affine case: the scratch
// []Value slices builtins use internally to flatten a Kernel list into
// Go-native form for processing (list->vector-style helpers, variadic
// argument gathering) and never retain past the call.

var scratchSlicePool = sync.Pool{New: func() any { s := make([]Value, 0, 8); return &s }}

// acquireScratch returns a zero-length, pool-backed []Value scratch
// slice. Callers must not retain it past the call that acquired it and
// must return it with releaseScratch.
func acquireScratch() *[]Value {
	return scratchSlicePool.Get().(*[]Value)
}

// releaseScratch clears and returns s to the pool.
func releaseScratch(s *[]Value) {
	*s = (*s)[:0]
	scratchSlicePool.Put(s)
}

// listToSlice flattens a proper Kernel list into a pooled scratch
// slice, for builtins that walk a whole operand list (e.g. print,
// println, string-append). Returns ok=false if v is not a proper list.
func listToSlice(v Value) (*[]Value, bool) {
	s := acquireScratch()
	for v != Null {
		p, ok := v.(*Pair)
		if !ok {
			releaseScratch(s)
			return nil, false
		}
		*s = append(*s, p.Car)
		v = p.Cdr
	}
	return s, true
}

// sliceToList builds a fresh proper list from a Go slice, newest cons
// last so the result reads in the same order as vs.
func sliceToList(vs []Value) Value {
	result := Value(Null)
	for i := len(vs) - 1; i >= 0; i-- {
		result = Cons(vs[i], result)
	}
	return result
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerCxrPrimitives binds the full cXXr accessor family (caar
// through cddddr, every a/d combination of length 2 through 4, 28
// procedures in all) plus map, the one higher-order list procedure the
// ground environment provides natively rather than deriving from
// kernel.k. Kernel library tradition generates the cXXr family rather
// than hand-writing each one; here that generator is cxrSequences plus
// cxrAccessor, run once at ground-environment construction.
func registerCxrPrimitives(env *Environment) {
	for length := 2; length <= 4; length++ {
		for _, ops := range cxrSequences(length) {
			name := "c" + ops + "r"
			bindPrimitive(env, name, cxrAccessor(name, ops))
		}
	}
	bindPrimitive(env, "map", primMap)
}

// cxrSequences returns every string of 'a'/'d' of the given length.
func cxrSequences(n int) []string {
	if n == 0 {
		return []string{""}
	}
	rest := cxrSequences(n - 1)
	out := make([]string, 0, 2*len(rest))
	for _, s := range rest {
		out = append(out, "a"+s, "d"+s)
	}
	return out
}

// cxrAccessor builds the accessor named "c"+ops+"r": ops is read
// left-to-right as the outermost-first operation, so it is applied to
// the argument right-to-left (cadr's "ad" applies cdr, then car).
func cxrAccessor(name, ops string) PrimitiveFunc {
	return func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		cur := v
		for i := len(ops) - 1; i >= 0; i-- {
			p, ok := cur.(*Pair)
			if !ok {
				return RaiseStep(newError(typeErrorContinuation, name+" requires a pair", cur), cont)
			}
			if ops[i] == 'a' {
				cur = p.Car
			} else {
				cur = p.Cdr
			}
		}
		return cont.PlugReduce(cur)
	}
}

// isProperList reports whether v terminates in Null, using Floyd's
// tortoise-and-hare walk so a list spliced into a cycle by encycle!
// is reported false rather than hanging.
func isProperList(v Value) bool {
	slow, fast := v, v
	for {
		if fast == Null {
			return true
		}
		fp, ok := fast.(*Pair)
		if !ok {
			return false
		}
		fast = fp.Cdr
		if fast == Null {
			return true
		}
		fp2, ok := fast.(*Pair)
		if !ok {
			return false
		}
		fast = fp2.Cdr
		sp := slow.(*Pair)
		slow = sp.Cdr
		if slow == fast {
			return false
		}
	}
}

// primMap implements map(applicative list1 list2 ...): every list must
// be proper and of equal length; the applicative is combined with the
// i-th elements of each list, in order, to produce the i-th result.
// Each combination runs through the trampoline via MapCont rather than
// recursing in Go, so an unbounded or continuation-capturing map body
// is as safe as any other tail position.
func primMap(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) < 2 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation, "map expects (applicative list ...)", operands), cont)
	}
	appVal := (*vs)[0]
	app, ok := appVal.(Combiner)
	if !ok {
		releaseScratch(vs)
		return RaiseStep(newError(typeErrorContinuation, "map requires an applicative", appVal), cont)
	}

	lists := make([][]Value, len(*vs)-1)
	n := -1
	for i, lv := range (*vs)[1:] {
		elems, ok := listToSlice(lv)
		if !ok {
			releaseScratch(vs)
			return RaiseStep(newError(typeErrorContinuation, "map requires proper lists", lv), cont)
		}
		cp := make([]Value, len(*elems))
		copy(cp, *elems)
		releaseScratch(elems)
		lists[i] = cp
		if n == -1 {
			n = len(cp)
		} else if n != len(cp) {
			releaseScratch(vs)
			return RaiseStep(newError(valueErrorContinuation, "map requires lists of equal length", operands), cont)
		}
	}
	releaseScratch(vs)

	if n <= 0 {
		return cont.PlugReduce(Null)
	}
	return mapStep(app, lists, 0, n, env, make([]Value, n), cont)
}

func mapStep(app Combiner, lists [][]Value, idx, n int, env *Environment, results []Value, cont Cont) Step {
	if idx == n {
		return cont.PlugReduce(sliceToList(results))
	}
	args := make([]Value, len(lists))
	for i := range lists {
		args[i] = lists[i][idx]
	}
	next := &MapCont{frameBase: base(cont), App: app, Lists: lists, Index: idx + 1, N: n, Env: env, Results: results}
	return applyCombiner(app, sliceToList(args), env, next)
}

// MapCont collects one element's result and advances map to the next
// index, or plugs the finished list once every index has run.
type MapCont struct {
	frameBase
	App      Combiner
	Lists    [][]Value
	Index, N int
	Env      *Environment
	Results  []Value
}

func (f *MapCont) PlugReduce(val Value) Step {
	f.Results[f.Index-1] = val
	return mapStep(f.App, f.Lists, f.Index, f.N, f.Env, f.Results, f.prev)
}

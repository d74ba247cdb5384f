// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// newKeyedDynamicVariable returns the (binder, accessor) applicative
// pair for make-keyed-dynamic-variable. The binder calls a zero-operand
// thunk under a dynamic extent tagged with this key's value; the
// accessor, called anywhere within that extent, walks the continuation
// chain outward for the nearest matching tag.
func newKeyedDynamicVariable() (binder, accessor *Applicative) {
	key := &KeyedDynamicKey{}

	bind := &PrimitiveOperative{Name: "keyed-dynamic-binder", Fn: func(operands Value, env *Environment, cont Cont) Step {
		p, ok := operands.(*Pair)
		if !ok {
			return RaiseStep(newError(arityMismatchContinuation, "expected (value thunk)", operands), cont)
		}
		p2, ok := p.Cdr.(*Pair)
		if !ok || p2.Cdr != Null {
			return RaiseStep(newError(arityMismatchContinuation, "expected (value thunk)", operands), cont)
		}
		value, thunk := p.Car, p2.Car
		c, ok := thunk.(Combiner)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "thunk must be combinable", thunk), cont)
		}
		tagged := &KeyedDynamicCont{frameBase: base(cont), Binder: key, Value: value}
		return applyCombiner(c, Null, env, tagged)
	}}

	access := &PrimitiveOperative{Name: "keyed-dynamic-accessor", Fn: func(operands Value, env *Environment, cont Cont) Step {
		for c := Cont(cont); c != nil; c = c.Prev() {
			if kd, ok := c.(*KeyedDynamicCont); ok && kd.Binder == key {
				return cont.PlugReduce(kd.Value)
			}
		}
		return RaiseStep(newError(unboundDynamicKeyContinuation, "keyed dynamic variable not bound in this extent", nil), cont)
	}}

	return Wrap(bind), Wrap(access)
}

// registerKeyedPrimitives binds make-keyed-dynamic-variable and
// make-keyed-static-variable, each minting a fresh key identity and
// returning its (binder accessor) pair on every call.
func registerKeyedPrimitives(env *Environment) {
	bindPrimitive(env, "make-keyed-dynamic-variable", func(operands Value, env *Environment, cont Cont) Step {
		binder, accessor := newKeyedDynamicVariable()
		return cont.PlugReduce(sliceToList([]Value{binder, accessor}))
	})
	bindPrimitive(env, "make-keyed-static-variable", func(operands Value, env *Environment, cont Cont) Step {
		binder, accessor := newKeyedStaticVariable()
		return cont.PlugReduce(sliceToList([]Value{binder, accessor}))
	})
}

// newKeyedStaticVariable returns the (binder, accessor) applicative
// pair for make-keyed-static-variable. The binder tags an environment
// directly; the accessor walks that environment's parent chain (not
// the continuation chain) for the nearest matching tag.
func newKeyedStaticVariable() (binder, accessor *Applicative) {
	key := &KeyedStaticKey{}

	bind := &PrimitiveOperative{Name: "keyed-static-binder", Fn: func(operands Value, env *Environment, cont Cont) Step {
		p, ok := operands.(*Pair)
		if !ok {
			return RaiseStep(newError(arityMismatchContinuation, "expected (env value)", operands), cont)
		}
		p2, ok := p.Cdr.(*Pair)
		if !ok || p2.Cdr != Null {
			return RaiseStep(newError(arityMismatchContinuation, "expected (env value)", operands), cont)
		}
		target, ok := p.Car.(*Environment)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "first argument must be an environment", p.Car), cont)
		}
		target.bindKeyedStatic(key, p2.Car)
		return cont.PlugReduce(Inert)
	}}

	access := &PrimitiveOperative{Name: "keyed-static-accessor", Fn: func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		target, ok := v.(*Environment)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "argument must be an environment", v), cont)
		}
		for e := target; e != nil; {
			if e.keyedStaticKey == key {
				return cont.PlugReduce(e.keyedStaticValue)
			}
			if len(e.Parents) == 0 {
				break
			}
			e = e.Parents[0]
		}
		return RaiseStep(newError(unboundStaticKeyContinuation, "keyed static variable not bound in this environment", v), cont)
	}}

	return Wrap(bind), Wrap(access)
}

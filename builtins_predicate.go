// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerPredicatePrimitives binds the type predicates and the two
// equivalence procedures, eq? and equal?.
func registerPredicatePrimitives(env *Environment) {
	bindPrimitive(env, "pair?", typePredicate(func(v Value) bool { _, ok := v.(*Pair); return ok }))
	bindPrimitive(env, "null?", typePredicate(func(v Value) bool { return v == Null }))
	bindPrimitive(env, "symbol?", typePredicate(func(v Value) bool { _, ok := v.(*Symbol); return ok }))
	bindPrimitive(env, "string?", typePredicate(func(v Value) bool { _, ok := v.(*KString); return ok }))
	bindPrimitive(env, "boolean?", typePredicate(func(v Value) bool { _, ok := v.(*Boolean); return ok }))
	bindPrimitive(env, "number?", typePredicate(isNumber))
	bindPrimitive(env, "inert?", typePredicate(func(v Value) bool { return v == Inert }))
	bindPrimitive(env, "ignore?", typePredicate(func(v Value) bool { return v == Ignore }))
	bindPrimitive(env, "environment?", typePredicate(func(v Value) bool { _, ok := v.(*Environment); return ok }))
	bindPrimitive(env, "combiner?", typePredicate(func(v Value) bool { _, ok := v.(Combiner); return ok }))
	bindPrimitive(env, "operative?", typePredicate(func(v Value) bool { _, ok := v.(Operative); return ok }))
	bindPrimitive(env, "applicative?", typePredicate(func(v Value) bool {
		_, ok := v.(*Applicative)
		return ok
	}))
	bindPrimitive(env, "promise?", typePredicate(func(v Value) bool { _, ok := v.(*Promise); return ok }))
	bindPrimitive(env, "list?", typePredicate(isProperList))
	bindPrimitive(env, "continuation?", typePredicate(isContinuation))
	bindPrimitive(env, "error-object?", typePredicate(func(v Value) bool { _, ok := v.(*ErrorObject); return ok }))

	bindPrimitive(env, "eq?", primEq)
	bindPrimitive(env, "equal?", primEqual)
	bindPrimitive(env, "not?", primNot)
	bindOperative(env, "$binds?", primBindsPred)
}

// isContinuation reports whether v is a continuation packaged as an
// applicative, the only form a continuation ever takes as a Kernel
// value (see ContinuationWrapper).
func isContinuation(v Value) bool {
	a, ok := v.(*Applicative)
	if !ok {
		return false
	}
	_, ok = a.WrappedCombiner.(*ContinuationWrapper)
	return ok
}

// typePredicate wraps a single-argument Go predicate as a Kernel
// unary applicative.
func typePredicate(pred func(Value) bool) PrimitiveFunc {
	return func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		return cont.PlugReduce(Bool(pred(v)))
	}
}

func primEq(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "eq? expects two arguments", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "eq? expects two arguments", operands), cont)
	}
	a, b := p.Car, p2.Car
	if a == b {
		return cont.PlugReduce(True)
	}
	if sa, ok := a.(*Symbol); ok {
		sb, ok := b.(*Symbol)
		return cont.PlugReduce(Bool(ok && SymbolEq(sa, sb)))
	}
	return cont.PlugReduce(Bool(isNumber(a) && isNumber(b) && numericEqual(a, b)))
}

func primEqual(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "equal? expects two arguments", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "equal? expects two arguments", operands), cont)
	}
	return cont.PlugReduce(Bool(Equal(p.Car, p2.Car)))
}

func primNot(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	switch {
	case IsTrue(v):
		return cont.PlugReduce(False)
	case IsFalse(v):
		return cont.PlugReduce(True)
	default:
		return RaiseStep(newError(typeErrorContinuation, "not? requires a boolean", v), cont)
	}
}

// primBindsPred implements $binds? as an operative: ($binds? env sym
// ...) evaluates only the environment operand; the symbol operands are
// literal, never looked up.
func primBindsPred(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$binds? expects (environment . symbols)", operands), cont)
	}
	return ContinueStep(p.Car, env, &BindsPredCont{frameBase: base(cont), Symbols: p.Cdr})
}

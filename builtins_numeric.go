// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerNumericPrimitives binds the exact-integer/infinity arithmetic
// surface: variadic +, -, *, the div/mod family, the =?/<?/<=?/>?
// comparison chain, and the positive?/negative?/zero? predicates. See
// numeric.go for the underlying Fixnum/Bignum/Infinity arithmetic,
// including overflow promotion and the indeterminate-result errors.
func registerNumericPrimitives(env *Environment) {
	bindPrimitive(env, "+", primAdd)
	bindPrimitive(env, "-", primSubtract)
	bindPrimitive(env, "*", primMultiply)
	bindPrimitive(env, "div", primDiv)
	bindPrimitive(env, "mod", primMod)
	bindPrimitive(env, "div-and-mod", primDivAndMod)
	bindPrimitive(env, "=?", numericChain(func(a, b Value) bool { return numericEqual(a, b) }))
	bindPrimitive(env, "<?", numericChain(numericLess))
	bindPrimitive(env, "<=?", numericChain(func(a, b Value) bool { return !numericLess(b, a) }))
	bindPrimitive(env, ">?", numericChain(func(a, b Value) bool { return numericLess(b, a) }))
	bindPrimitive(env, ">=?", numericChain(func(a, b Value) bool { return !numericLess(a, b) }))
	bindPrimitive(env, "positive?", numericUnaryPredicate(func(v Value) bool { return numericLess(&Fixnum{Value: 0}, v) }))
	bindPrimitive(env, "negative?", numericUnaryPredicate(func(v Value) bool { return numericLess(v, &Fixnum{Value: 0}) }))
	bindPrimitive(env, "zero?", numericUnaryPredicate(func(v Value) bool { return numericEqual(v, &Fixnum{Value: 0}) }))
}

// numericOperands gathers operands into a slice, checking each is a
// number (exact integer or infinity).
func numericOperands(name string, operands Value) ([]Value, *ErrorObject) {
	vs, ok := listToSlice(operands)
	if !ok {
		return nil, newError(combineWithNonListOperandsContinuation, name+" requires a list of numbers", operands)
	}
	defer releaseScratch(vs)
	out := make([]Value, len(*vs))
	for i, v := range *vs {
		if !isNumber(v) {
			return nil, newError(typeErrorContinuation, name+" requires numbers", v)
		}
		out[i] = v
	}
	return out, nil
}

// primAdd implements variadic +: the empty sum is 0.
func primAdd(operands Value, env *Environment, cont Cont) Step {
	vs, err := numericOperands("+", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	acc := Value(&Fixnum{Value: 0})
	for _, v := range vs {
		var e *ErrorObject
		acc, e = numericAdd(acc, v)
		if e != nil {
			return RaiseStep(e, cont)
		}
	}
	return cont.PlugReduce(acc)
}

// primSubtract implements -: unary negation with one argument,
// left-to-right subtraction with two or more.
func primSubtract(operands Value, env *Environment, cont Cont) Step {
	vs, err := numericOperands("-", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	if len(vs) == 0 {
		return RaiseStep(newError(arityMismatchContinuation, "- requires at least one argument", operands), cont)
	}
	if len(vs) == 1 {
		return cont.PlugReduce(numericNegate(vs[0]))
	}
	acc := vs[0]
	for _, v := range vs[1:] {
		var e *ErrorObject
		acc, e = numericSubtract(acc, v)
		if e != nil {
			return RaiseStep(e, cont)
		}
	}
	return cont.PlugReduce(acc)
}

// primMultiply implements variadic *: the empty product is 1.
func primMultiply(operands Value, env *Environment, cont Cont) Step {
	vs, err := numericOperands("*", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	acc := Value(&Fixnum{Value: 1})
	for _, v := range vs {
		var e *ErrorObject
		acc, e = numericMultiply(acc, v)
		if e != nil {
			return RaiseStep(e, cont)
		}
	}
	return cont.PlugReduce(acc)
}

func twoNumericOperands(name string, operands Value) (a, b Value, err *ErrorObject) {
	p, ok := operands.(*Pair)
	if !ok {
		return nil, nil, newError(arityMismatchContinuation, name+" expects two arguments", operands)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return nil, nil, newError(arityMismatchContinuation, name+" expects two arguments", operands)
	}
	if !isNumber(p.Car) || !isNumber(p2.Car) {
		bad := p.Car
		if isNumber(p.Car) {
			bad = p2.Car
		}
		return nil, nil, newError(typeErrorContinuation, name+" requires numbers", bad)
	}
	return p.Car, p2.Car, nil
}

func primDiv(operands Value, env *Environment, cont Cont) Step {
	a, b, err := twoNumericOperands("div", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	q, e := numericDivide(a, b)
	if e != nil {
		return RaiseStep(e, cont)
	}
	return cont.PlugReduce(q)
}

func primMod(operands Value, env *Environment, cont Cont) Step {
	a, b, err := twoNumericOperands("mod", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	q, e := numericDivide(a, b)
	if e != nil {
		return RaiseStep(e, cont)
	}
	qb, e := numericMultiply(q, b)
	if e != nil {
		return RaiseStep(e, cont)
	}
	r, e := numericSubtract(a, qb)
	if e != nil {
		return RaiseStep(e, cont)
	}
	return cont.PlugReduce(r)
}

// primDivAndMod returns (list quotient remainder) as a single value,
// since Kernel's combination protocol returns exactly one result.
func primDivAndMod(operands Value, env *Environment, cont Cont) Step {
	a, b, err := twoNumericOperands("div-and-mod", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	q, e := numericDivide(a, b)
	if e != nil {
		return RaiseStep(e, cont)
	}
	qb, e := numericMultiply(q, b)
	if e != nil {
		return RaiseStep(e, cont)
	}
	r, e := numericSubtract(a, qb)
	if e != nil {
		return RaiseStep(e, cont)
	}
	return cont.PlugReduce(sliceToList([]Value{q, r}))
}

// numericChain builds a variadic comparison applicative: (op? a b c)
// holds iff op holds between every consecutive pair; zero or one
// argument is vacuously true.
func numericChain(op func(a, b Value) bool) PrimitiveFunc {
	return func(operands Value, env *Environment, cont Cont) Step {
		vs, err := numericOperands("numeric comparison", operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		for i := 1; i < len(vs); i++ {
			if !op(vs[i-1], vs[i]) {
				return cont.PlugReduce(False)
			}
		}
		return cont.PlugReduce(True)
	}
}

func numericUnaryPredicate(pred func(Value) bool) PrimitiveFunc {
	return func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		if !isNumber(v) {
			return RaiseStep(newError(typeErrorContinuation, "requires a number", v), cont)
		}
		return cont.PlugReduce(Bool(pred(v)))
	}
}

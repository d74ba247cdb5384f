// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerPairPrimitives binds the pair/list applicatives: constructor,
// accessors, mutators, and the common list-processing procedures.
func registerPairPrimitives(env *Environment) {
	bindPrimitive(env, "cons", primCons)
	bindPrimitive(env, "car", primCar)
	bindPrimitive(env, "cdr", primCdr)
	bindPrimitive(env, "set-car!", primSetCar)
	bindPrimitive(env, "set-cdr!", primSetCdr)
	bindPrimitive(env, "list", primList)
	bindPrimitive(env, "list*", primListStar)
	bindPrimitive(env, "append", primAppend)
	bindPrimitive(env, "length", primLength)
	bindPrimitive(env, "list-tail", primListTail)
	bindPrimitive(env, "list-ref", primListRef)
	bindPrimitive(env, "reverse", primReverse)
	bindPrimitive(env, "encycle!", primEncycle)
}

func primCons(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "cons expects two arguments", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "cons expects two arguments", operands), cont)
	}
	return cont.PlugReduce(Cons(p.Car, p2.Car))
}

func pairAccessor(name string, project func(*Pair) Value) PrimitiveFunc {
	return func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		p, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, name+" requires a pair", v), cont)
		}
		return cont.PlugReduce(project(p))
	}
}

var primCar = pairAccessor("car", func(p *Pair) Value { return p.Car })
var primCdr = pairAccessor("cdr", func(p *Pair) Value { return p.Cdr })

func primSetCar(operands Value, env *Environment, cont Cont) Step {
	p, pair, err := twoOperandsFirstPair("set-car!", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	pair.Car = p
	return cont.PlugReduce(Inert)
}

func primSetCdr(operands Value, env *Environment, cont Cont) Step {
	p, pair, err := twoOperandsFirstPair("set-cdr!", operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	pair.Cdr = p
	return cont.PlugReduce(Inert)
}

// twoOperandsFirstPair extracts (pair, newValue) from a 2-operand list
// whose first element must be a *Pair, returning the new value and the
// pair, in that order, to match set-car!/set-cdr!'s argument order
// (pair new-value) while keeping the common validation in one place.
func twoOperandsFirstPair(name string, operands Value) (newValue Value, pair *Pair, err *ErrorObject) {
	p, ok := operands.(*Pair)
	if !ok {
		return nil, nil, newError(arityMismatchContinuation, name+" expects (pair value)", operands)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return nil, nil, newError(arityMismatchContinuation, name+" expects (pair value)", operands)
	}
	target, ok := p.Car.(*Pair)
	if !ok {
		return nil, nil, newError(typeErrorContinuation, name+" requires a pair", p.Car)
	}
	return p2.Car, target, nil
}

func primList(operands Value, env *Environment, cont Cont) Step {
	return cont.PlugReduce(operands)
}

// primListStar implements list*: like list, but the last operand
// becomes the tail of the result instead of its last element.
func primListStar(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "list* requires a list of operands", operands), cont)
	}
	defer releaseScratch(vs)
	if len(*vs) == 0 {
		return cont.PlugReduce(Null)
	}
	result := (*vs)[len(*vs)-1]
	for i := len(*vs) - 2; i >= 0; i-- {
		result = Cons((*vs)[i], result)
	}
	return cont.PlugReduce(result)
}

func primAppend(operands Value, env *Environment, cont Cont) Step {
	lists, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "append requires a list of lists", operands), cont)
	}
	defer releaseScratch(lists)
	result := Value(Null)
	for i := len(*lists) - 1; i >= 0; i-- {
		elems, ok := listToSlice((*lists)[i])
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "append requires proper lists", (*lists)[i]), cont)
		}
		for j := len(*elems) - 1; j >= 0; j-- {
			result = Cons((*elems)[j], result)
		}
		releaseScratch(elems)
	}
	return cont.PlugReduce(result)
}

func primLength(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	n := int64(0)
	for v != Null {
		p, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "length requires a proper list", v), cont)
		}
		n++
		v = p.Cdr
	}
	return cont.PlugReduce(&Fixnum{Value: n})
}

func primListTail(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "list-tail expects (list k)", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "list-tail expects (list k)", operands), cont)
	}
	k, ok := p2.Car.(*Fixnum)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "list-tail's index must be a fixnum", p2.Car), cont)
	}
	v := p.Car
	for i := int64(0); i < k.Value; i++ {
		pp, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(valueErrorContinuation, "list-tail index out of range", p.Car), cont)
		}
		v = pp.Cdr
	}
	return cont.PlugReduce(v)
}

func primListRef(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "list-ref expects (list k)", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "list-ref expects (list k)", operands), cont)
	}
	k, ok := p2.Car.(*Fixnum)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "list-ref's index must be a fixnum", p2.Car), cont)
	}
	v := p.Car
	for i := int64(0); i < k.Value; i++ {
		pp, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(valueErrorContinuation, "list-ref index out of range", p.Car), cont)
		}
		v = pp.Cdr
	}
	pp, ok := v.(*Pair)
	if !ok {
		return RaiseStep(newError(valueErrorContinuation, "list-ref index out of range", p.Car), cont)
	}
	return cont.PlugReduce(pp.Car)
}

func primReverse(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	result := Value(Null)
	for v != Null {
		p, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "reverse requires a proper list", v), cont)
		}
		result = Cons(p.Car, result)
		v = p.Cdr
	}
	return cont.PlugReduce(result)
}

// primEncycle destructively links a non-empty proper list's last pair
// back to some earlier pair in itself, producing a cyclic list; k
// counts pairs from the front to choose the splice point.
func primEncycle(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "encycle! expects (list k)", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "encycle! expects (list k)", operands), cont)
	}
	k, ok := p2.Car.(*Fixnum)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "encycle!'s index must be a fixnum", p2.Car), cont)
	}
	head, ok := p.Car.(*Pair)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "encycle! requires a non-empty list", p.Car), cont)
	}
	target := Value(head)
	for i := int64(0); i < k.Value; i++ {
		tp, ok := target.(*Pair)
		if !ok {
			return RaiseStep(newError(valueErrorContinuation, "encycle! index out of range", p.Car), cont)
		}
		target = tp.Cdr
	}
	last := head
	for {
		next, ok := last.Cdr.(*Pair)
		if !ok {
			break
		}
		last = next
	}
	last.Cdr = target
	return cont.PlugReduce(Inert)
}

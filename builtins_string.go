// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "strings"

// registerStringPrimitives binds the small string/symbol surface:
// string-append, symbol->string, string->symbol, string-length and
// string=?.
func registerStringPrimitives(env *Environment) {
	bindPrimitive(env, "string-append", primStringAppend)
	bindPrimitive(env, "symbol->string", primSymbolToString)
	bindPrimitive(env, "string->symbol", primStringToSymbol)
	bindPrimitive(env, "string-length", primStringLength)
	bindPrimitive(env, "string=?", primStringEq)
}

func primStringAppend(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "string-append requires a list of strings", operands), cont)
	}
	defer releaseScratch(vs)
	var b strings.Builder
	for _, v := range *vs {
		s, ok := v.(*KString)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "string-append requires strings", v), cont)
		}
		b.WriteString(s.Value)
	}
	return cont.PlugReduce(&KString{Value: b.String()})
}

func primSymbolToString(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	s, ok := v.(*Symbol)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "symbol->string requires a symbol", v), cont)
	}
	return cont.PlugReduce(&KString{Value: s.Name})
}

func primStringToSymbol(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	s, ok := v.(*KString)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "string->symbol requires a string", v), cont)
	}
	return cont.PlugReduce(Intern(s.Value))
}

func primStringLength(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	s, ok := v.(*KString)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "string-length requires a string", v), cont)
	}
	return cont.PlugReduce(&Fixnum{Value: int64(len(s.Value))})
}

func primStringEq(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "string=? expects two arguments", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "string=? expects two arguments", operands), cont)
	}
	a, ok := p.Car.(*KString)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "string=? requires strings", p.Car), cont)
	}
	b, ok := p2.Car.(*KString)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "string=? requires strings", p2.Car), cont)
	}
	return cont.PlugReduce(Bool(a.Value == b.Value))
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// newEncapsulationType creates a fresh, opaque type identity plus the
// three combiners make-encapsulation-type returns: constructor,
// predicate, and accessor. Only these three, closing over the same
// *EncapsulationType pointer, can ever produce or unwrap an
// EncapsulatedObject of this type — identity is the pointer, never the
// diagnostic name.
func newEncapsulationType(name string) (constructor, predicate, accessor *Applicative) {
	typ := &EncapsulationType{name: name}

	ctor := &PrimitiveOperative{Name: "encapsulate:" + name, Fn: func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		return cont.PlugReduce(&EncapsulatedObject{Type: typ, Payload: v})
	}}

	pred := &PrimitiveOperative{Name: name + "?", Fn: func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		eo, ok := v.(*EncapsulatedObject)
		return cont.PlugReduce(Bool(ok && eo.Type == typ))
	}}

	acc := &PrimitiveOperative{Name: "decapsulate:" + name, Fn: func(operands Value, env *Environment, cont Cont) Step {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		eo, ok := v.(*EncapsulatedObject)
		if !ok || eo.Type != typ {
			return RaiseStep(newError(encapsulationTypeErrorContinuation, "value is not of this encapsulation type", v), cont)
		}
		return cont.PlugReduce(eo.Payload)
	}}

	return Wrap(ctor), Wrap(pred), Wrap(acc)
}

// registerEncapsulationPrimitives binds make-encapsulation-type, which
// returns a freshly minted (constructor predicate accessor) list each
// time it is called.
func registerEncapsulationPrimitives(env *Environment) {
	bindPrimitive(env, "make-encapsulation-type", primMakeEncapsulationType)
}

func primMakeEncapsulationType(operands Value, env *Environment, cont Cont) Step {
	name := "anonymous"
	if operands != Null {
		if p, ok := operands.(*Pair); ok {
			if s, ok := p.Car.(*KString); ok {
				name = s.Value
			}
		}
	}
	ctor, pred, acc := newEncapsulationType(name)
	return cont.PlugReduce(sliceToList([]Value{ctor, pred, acc}))
}

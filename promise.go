// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// force evaluates a pending promise's expression and resolves the
// promise with the result; a resolved promise yields its value without
// evaluating anything. A nested pending promise produced by the
// expression has its expression and environment copied into p, and is
// itself left pending (see HandlePromiseResultCont in frame.go).
func force(p *Promise, cont Cont) Step {
	if p.Env == nil {
		return cont.PlugReduce(p.Value)
	}
	return ContinueStep(p.Expr, p.Env, &HandlePromiseResultCont{frameBase: base(cont), Promise: p})
}

// registerPromisePrimitives binds $lazy (operative, captures its
// expression and the dynamic environment unevaluated), and the two
// applicatives memoize/force.
func registerPromisePrimitives(env *Environment) {
	bindOperative(env, "$lazy", primLazy)
	bindPrimitive(env, "memoize", primMemoize)
	bindPrimitive(env, "force", primForce)
}

func primLazy(operands Value, env *Environment, cont Cont) Step {
	expr, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	return cont.PlugReduce(&Promise{Expr: expr, Env: env})
}

// primMemoize wraps an already-evaluated value in a pre-resolved
// promise cell: (Value, nil Env).
func primMemoize(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	return cont.PlugReduce(&Promise{Value: v})
}

// primForce implements force: on a non-promise it returns the value
// unchanged; on a promise it drives the at-most-once forcing algorithm.
func primForce(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	p, ok := v.(*Promise)
	if !ok {
		return cont.PlugReduce(v)
	}
	return force(p, cont)
}

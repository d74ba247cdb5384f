// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerControlPrimitives binds the $-prefixed special forms (bare
// operatives, operands unevaluated) and the core combiner-manipulation
// applicatives (wrap, unwrap, eval, apply).
func registerControlPrimitives(env *Environment) {
	bindOperative(env, "$sequence", primSequence)
	bindOperative(env, "$if", primIf)
	bindOperative(env, "$cond", primCond)
	bindOperative(env, "$define!", primDefine)
	bindOperative(env, "$vau", primVau)
	bindOperative(env, "$lambda", primLambda)
	bindOperative(env, "$and?", primAndPred)
	bindOperative(env, "$or?", primOrPred)
	bindOperative(env, "$let", primLet)

	bindPrimitive(env, "wrap", primWrap)
	bindPrimitive(env, "unwrap", primUnwrap)
	bindPrimitive(env, "eval", primEval)
	bindPrimitive(env, "apply", primApply)
	bindPrimitive(env, "make-environment", primMakeEnvironment)
}

func primSequence(operands Value, env *Environment, cont Cont) Step {
	return evalSequence(operands, env, cont)
}

func primIf(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) != 3 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation, "$if expects (test consequent alternative)", operands), cont)
	}
	test, conseq, altern := (*vs)[0], (*vs)[1], (*vs)[2]
	releaseScratch(vs)
	return ContinueStep(test, env, &IfCont{frameBase: base(cont), Consequent: conseq, Alternative: altern, Env: env})
}

func primCond(operands Value, env *Environment, cont Cont) Step {
	return evalCondClauses(operands, env, cont)
}

func primDefine(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$define! expects (param-tree expr)", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok || p2.Cdr != Null {
		return RaiseStep(newError(arityMismatchContinuation, "$define! expects (param-tree expr)", operands), cont)
	}
	return ContinueStep(p2.Car, env, &DefineCont{frameBase: base(cont), ParamTree: p.Car, Env: env})
}

func primVau(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$vau expects (formals eformal . body)", operands), cont)
	}
	p2, ok := p.Cdr.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$vau expects (formals eformal . body)", operands), cont)
	}
	op := &CompoundOperative{Formals: p.Car, EnvFormal: p2.Car, Body: p2.Cdr, StaticEnv: env}
	return cont.PlugReduce(op)
}

// primLambda implements $lambda directly rather than deriving it from
// $vau + wrap at every call site: ($lambda formals . body) is exactly
// (wrap ($vau formals #ignore . body)) but without the extra
// allocation and indirection of constructing and immediately consuming
// an intermediate $vau form.
func primLambda(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$lambda expects (formals . body)", operands), cont)
	}
	op := &CompoundOperative{Formals: p.Car, EnvFormal: Ignore, Body: p.Cdr, StaticEnv: env}
	return cont.PlugReduce(Wrap(op))
}

func primWrap(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	c, ok := v.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "wrap requires a combiner", v), cont)
	}
	return cont.PlugReduce(Wrap(c))
}

func primUnwrap(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	a, ok := v.(*Applicative)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "unwrap requires an applicative", v), cont)
	}
	return cont.PlugReduce(Unwrap(a))
}

// primEval implements eval by continuing the very same trampoline with
// a new (expr, env) pair and the caller's own continuation: nested
// evaluation needs no separate Run call and so adds no Go call-stack
// depth, keeping eval's own tail calls bounded exactly like any other
// Kernel combination.
func primEval(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) != 2 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation, "eval expects (expr environment)", operands), cont)
	}
	expr, envVal := (*vs)[0], (*vs)[1]
	releaseScratch(vs)
	target, ok := envVal.(*Environment)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "eval's second argument must be an environment", envVal), cont)
	}
	return ContinueStep(expr, target, cont)
}

// primApply implements apply: (apply combiner args [environment]).
// Args is a plain list, already evaluated by the applicative wrapper
// around this primitive, so applyCombiner must hand it to the
// underlying operative unevaluated-looking but logically-evaluated —
// exactly what applyCombiner's unwrap-to-Operative strategy guarantees.
func primApply(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) < 2 || len(*vs) > 3 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation, "apply expects (combiner args [environment])", operands), cont)
	}
	combinerVal, args := (*vs)[0], (*vs)[1]
	dynEnv := env
	if len(*vs) == 3 {
		e, ok := (*vs)[2].(*Environment)
		if !ok {
			releaseScratch(vs)
			return RaiseStep(newError(typeErrorContinuation, "apply's third argument must be an environment", (*vs)[2]), cont)
		}
		dynEnv = e
	}
	releaseScratch(vs)
	c, ok := combinerVal.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "apply requires a combiner", combinerVal), cont)
	}
	return applyCombiner(c, args, dynEnv, cont)
}

func primAndPred(operands Value, env *Environment, cont Cont) Step {
	if operands == Null {
		return cont.PlugReduce(True)
	}
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$and? operands must be a list", operands), cont)
	}
	return ContinueStep(p.Car, env, &AndCont{frameBase: base(cont), Rest: p.Cdr, Env: env})
}

func primOrPred(operands Value, env *Environment, cont Cont) Step {
	if operands == Null {
		return cont.PlugReduce(False)
	}
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$or? operands must be a list", operands), cont)
	}
	return ContinueStep(p.Car, env, &OrCont{frameBase: base(cont), Rest: p.Cdr, Env: env})
}

// primLet implements ($let ((sym expr) ...) body...): bindings are
// evaluated left to right in the surrounding dynamic environment, then
// bound into a fresh child environment the body is evaluated in.
func primLet(operands Value, env *Environment, cont Cont) Step {
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(arityMismatchContinuation, "$let expects (bindings . body)", operands), cont)
	}
	local := NewEnvironment([]*Environment{env})
	return evalLetBindings(p.Car, p.Cdr, local, env, cont)
}

func primMakeEnvironment(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "make-environment expects a list of environments", operands), cont)
	}
	parents := make([]*Environment, 0, len(*vs))
	for _, v := range *vs {
		e, ok := v.(*Environment)
		if !ok {
			releaseScratch(vs)
			return RaiseStep(newError(typeErrorContinuation, "make-environment's arguments must be environments", v), cont)
		}
		parents = append(parents, e)
	}
	releaseScratch(vs)
	return cont.PlugReduce(NewEnvironment(parents))
}

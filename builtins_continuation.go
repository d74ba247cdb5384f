// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// registerContinuationPrimitives binds the first-class continuation
// surface: call/cc, continuation->applicative, guard-continuation, and
// extend-continuation. Continuation frames are already Values (Cont
// embeds Value; see frame.go), so these primitives pass captured
// frames around like any other first-class datum.
func registerContinuationPrimitives(env *Environment) {
	bindPrimitive(env, "call/cc", primCallCC)
	bindPrimitive(env, "continuation->applicative", primContinuationToApplicative)
	bindPrimitive(env, "guard-continuation", primGuardContinuation)
	bindPrimitive(env, "extend-continuation", primExtendContinuation)
}

// primCallCC implements call/cc(app) = (app current-cont): the current
// continuation is packaged as an Applicative wrapping a
// ContinuationWrapper and handed to app as its sole argument. If app
// returns normally the value flows on through the same cont exactly as
// an ordinary tail call; if app invokes the packaged continuation, an
// abnormal pass to cont fires instead.
func primCallCC(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	c, ok := v.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "call/cc requires a combiner", v), cont)
	}
	wrapped := Wrap(&ContinuationWrapper{Captured: cont})
	return applyCombiner(c, Cons(wrapped, Null), env, cont)
}

func primContinuationToApplicative(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	c, ok := v.(Cont)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "continuation->applicative requires a continuation", v), cont)
	}
	return cont.PlugReduce(Wrap(&ContinuationWrapper{Captured: c}))
}

// primGuardContinuation implements guard-continuation:
// (guard-continuation entry-guards cont-to-guard exit-guards), each
// guards list a list of (selector interceptor) clauses. It returns a
// new continuation — the extent boundary — built as an OuterGuardCont
// (entry clauses) wrapping cont-to-guard, itself wrapped by an
// InnerGuardCont (exit clauses); see abnormal.go for how the two are
// consulted on opposite sides of an abnormal pass.
func primGuardContinuation(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) != 3 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation,
			"guard-continuation expects (entry-guards cont-to-guard exit-guards)", operands), cont)
	}
	entryGuardsVal, contToGuardVal, exitGuardsVal := (*vs)[0], (*vs)[1], (*vs)[2]
	releaseScratch(vs)

	contToGuard, ok := contToGuardVal.(Cont)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "guard-continuation's second argument must be a continuation", contToGuardVal), cont)
	}
	entryClauses, err := parseGuardClauses(entryGuardsVal)
	if err != nil {
		return RaiseStep(err, cont)
	}
	exitClauses, err := parseGuardClauses(exitGuardsVal)
	if err != nil {
		return RaiseStep(err, cont)
	}

	outer := &OuterGuardCont{frameBase: base(contToGuard), Clauses: entryClauses, Env: env}
	inner := &InnerGuardCont{frameBase: base(outer), Clauses: exitClauses, Env: env}
	return cont.PlugReduce(inner)
}

// parseGuardClauses converts a Kernel list of (selector interceptor)
// pairs into GuardClause values.
func parseGuardClauses(v Value) ([]GuardClause, *ErrorObject) {
	items, ok := listToSlice(v)
	if !ok {
		return nil, newError(combineWithNonListOperandsContinuation, "guard clause list must be a proper list", v)
	}
	defer releaseScratch(items)
	clauses := make([]GuardClause, 0, len(*items))
	for _, item := range *items {
		pair, ok := listToSlice(item)
		if !ok || len(*pair) != 2 {
			if ok {
				releaseScratch(pair)
			}
			return nil, newError(operandMismatchContinuation, "guard clause must be (selector interceptor)", item)
		}
		selector, ok := (*pair)[0].(Cont)
		if !ok {
			releaseScratch(pair)
			return nil, newError(typeErrorContinuation, "guard clause selector must be a continuation", (*pair)[0])
		}
		interceptor := (*pair)[1]
		releaseScratch(pair)
		clauses = append(clauses, GuardClause{Selector: selector, Interceptor: interceptor})
	}
	return clauses, nil
}

// primExtendContinuation implements extend-continuation(cont, receiver[, env]):
// returns a fresh continuation whose plug calls receiver on the
// incoming value in env, with cont as what runs next.
func primExtendContinuation(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok || len(*vs) < 2 || len(*vs) > 3 {
		if ok {
			releaseScratch(vs)
		}
		return RaiseStep(newError(arityMismatchContinuation, "extend-continuation expects (continuation receiver [environment])", operands), cont)
	}
	target, receiverVal := (*vs)[0], (*vs)[1]
	callEnv := env
	if len(*vs) == 3 {
		e, ok := (*vs)[2].(*Environment)
		if !ok {
			releaseScratch(vs)
			return RaiseStep(newError(typeErrorContinuation, "extend-continuation's third argument must be an environment", (*vs)[2]), cont)
		}
		callEnv = e
	}
	releaseScratch(vs)
	targetCont, ok := target.(Cont)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "extend-continuation requires a continuation", target), cont)
	}
	receiver, ok := receiverVal.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "extend-continuation's receiver must be a combiner", receiverVal), cont)
	}
	return cont.PlugReduce(&ExtendCont{frameBase: base(targetCont), Receiver: receiver, Env: callEnv})
}

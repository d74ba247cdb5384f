// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// Cont is the interface every continuation frame implements: frames
// are plain data structs, one type per continuation shape, and each
// type's PlugReduce method supplies its step rather than a stored
// closure (abnormal.go additionally type-switches on the guard frames).
// Each frame embeds frameBase for the prev link and the transient
// marked bit abnormal pass needs.
type Cont interface {
	Value
	Prev() Cont
	Marked() bool
	SetMarked(bool)
	// PlugReduce delivers val to this frame, consuming it, and returns
	// the trampoline's next Step.
	PlugReduce(val Value) Step
}

// frameBase supplies every concrete frame's Prev/Marked/SetMarked and
// the Value marker. Embedded by value; methods have pointer receivers
// so they promote correctly since every frame is always used as *T.
type frameBase struct {
	prev   Cont
	marked bool
}

func (b *frameBase) Prev() Cont        { return b.prev }
func (b *frameBase) Marked() bool      { return b.marked }
func (b *frameBase) SetMarked(m bool)  { b.marked = m }
func (*frameBase) value()              {}

func base(prev Cont) frameBase { return frameBase{prev: prev} }

// RootCont is the outermost continuation of a top-level trampoline run.
// Plugging it raises the distinguished termination signal.
type RootCont struct{ frameBase }

func NewRootCont() *RootCont { return &RootCont{} }

func (f *RootCont) PlugReduce(val Value) Step { return TerminateStep(val) }

// TerminalCont is the analogous escape for an embedded, ad-hoc
// evaluation that an embedder runs to completion with its own Run
// call. The `eval` and `apply` primitives do not use it: they
// tail-transfer into the caller's trampoline instead.
type TerminalCont struct{ frameBase }

func NewTerminalCont() *TerminalCont { return &TerminalCont{} }

func (f *TerminalCont) PlugReduce(val Value) Step { return TerminateStep(val) }

// BaseErrorCont prints an unhandled error and forwards to its prev
// (usually the root continuation), terminating the program gracefully
// rather than leaving control state wedged. An error object is printed
// and replaced by #inert; any other value is forwarded unchanged.
type BaseErrorCont struct {
	frameBase
	Print func(*ErrorObject)
}

func (f *BaseErrorCont) PlugReduce(val Value) Step {
	if eo, ok := val.(*ErrorObject); ok {
		if f.Print != nil {
			f.Print(eo)
		}
		return f.prev.PlugReduce(Inert)
	}
	return f.prev.PlugReduce(val)
}

// NewBaseErrorCont builds a BaseErrorCont above prev, for an embedder
// (internal/driver) that wants a place to observe and report otherwise
// uncaught errors without constructing frames by hand.
func NewBaseErrorCont(prev Cont, print func(*ErrorObject)) *BaseErrorCont {
	return &BaseErrorCont{frameBase: base(prev), Print: print}
}

// EvalArgsCont evaluates the remaining operand expressions after the
// current one, left-to-right, folding each result with GatherArgsCont.
type EvalArgsCont struct {
	frameBase
	Rest Value // remaining operand expressions, including the next to evaluate
	Env  *Environment
}

func (f *EvalArgsCont) PlugReduce(headVal Value) Step {
	return evalArgs(f.Rest, f.Env, &GatherArgsCont{frameBase: base(f.prev), Head: headVal})
}

// NoMoreArgsCont terminates the argument-evaluation chain: on receiving
// the value of the last operand expression, it plugs (val . ()) into
// prev directly.
type NoMoreArgsCont struct{ frameBase }

func (f *NoMoreArgsCont) PlugReduce(val Value) Step {
	return f.prev.PlugReduce(Cons(val, Null))
}

// GatherArgsCont holds one already-evaluated argument (Head) while the
// tail of the operand list is evaluated; on receiving the tail list it
// conses Head onto it and plugs into prev.
type GatherArgsCont struct {
	frameBase
	Head Value
}

func (f *GatherArgsCont) PlugReduce(tail Value) Step {
	return f.prev.PlugReduce(Cons(f.Head, tail))
}

// evalArgs is the entry point for left-to-right strict argument
// evaluation: if operands is (), the gathered result is (); otherwise
// the head is evaluated under either an EvalArgsCont (more operands
// follow) or a NoMoreArgsCont (this is the last operand).
func evalArgs(operands Value, env *Environment, final Cont) Step {
	if operands == Null {
		return final.PlugReduce(Null)
	}
	p, ok := operands.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation,
			"combination operands must be a list", operands), final)
	}
	if p.Cdr == Null {
		return ContinueStep(p.Car, env, &NoMoreArgsCont{frameBase: base(final)})
	}
	return ContinueStep(p.Car, env, &EvalArgsCont{frameBase: base(final), Rest: p.Cdr, Env: env})
}

// ApplyCont receives the fully gathered argument list and invokes the
// combiner that was waiting for it.
type ApplyCont struct {
	frameBase
	Combiner Combiner
	Env      *Environment
}

func (f *ApplyCont) PlugReduce(args Value) Step {
	return f.Combiner.Combine(args, f.Env, f.prev)
}

// CombineCont receives the evaluated operator (the car of a
// combination being interpreted) and dispatches combination on it.
type CombineCont struct {
	frameBase
	Operands Value
	Env      *Environment
}

func (f *CombineCont) PlugReduce(op Value) Step {
	c, ok := op.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation,
			TypeName(op)+" is not combinable", op), f.prev)
	}
	return c.Combine(f.Operands, f.Env, f.prev)
}

// SequenceCont evaluates the rest of a body sequence in the same
// environment, discarding the value just plugged.
type SequenceCont struct {
	frameBase
	Rest Value
	Env  *Environment
}

func (f *SequenceCont) PlugReduce(Value) Step {
	return evalSequence(f.Rest, f.Env, f.prev)
}

// evalSequence implements the sequence rule: an empty body yields
// #inert; the last element evaluates in tail position (cont reused
// unchanged); every earlier element installs a SequenceCont so its
// value is discarded.
func evalSequence(exprs Value, env *Environment, cont Cont) Step {
	if exprs == Null {
		return cont.PlugReduce(Inert)
	}
	p, ok := exprs.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation,
			"body must be a list", exprs), cont)
	}
	if p.Cdr == Null {
		return ContinueStep(p.Car, env, cont)
	}
	return ContinueStep(p.Car, env, &SequenceCont{frameBase: base(cont), Rest: p.Cdr, Env: env})
}

// IfCont selects a branch once $if's test has been evaluated. Any
// non-boolean test value is a type error rather than a fatal
// assertion.
type IfCont struct {
	frameBase
	Consequent, Alternative Value
	Env                     *Environment
}

func (f *IfCont) PlugReduce(val Value) Step {
	switch {
	case IsTrue(val):
		return ContinueStep(f.Consequent, f.Env, f.prev)
	case IsFalse(val):
		return ContinueStep(f.Alternative, f.Env, f.prev)
	default:
		return RaiseStep(newError(typeErrorContinuation,
			"$if test must be a boolean, got "+TypeName(val), val), f.prev)
	}
}

// CondCont holds the body of the clause currently under test plus the
// clauses not yet tried, so the next step can be chosen once the test
// result is plugged.
type CondCont struct {
	frameBase
	Body      Value
	Remaining Value
	Env       *Environment
}

func (f *CondCont) PlugReduce(testVal Value) Step {
	switch {
	case IsTrue(testVal):
		return evalSequence(f.Body, f.Env, f.prev)
	case IsFalse(testVal):
		return evalCondClauses(f.Remaining, f.Env, f.prev)
	default:
		return RaiseStep(newError(typeErrorContinuation,
			"$cond test must be a boolean, got "+TypeName(testVal), testVal), f.prev)
	}
}

// evalCondClauses iterates (test . body) clauses in order; exhausting
// the list yields #inert.
func evalCondClauses(clauses Value, env *Environment, cont Cont) Step {
	if clauses == Null {
		return cont.PlugReduce(Inert)
	}
	cp, ok := clauses.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$cond clauses must be a list", clauses), cont)
	}
	clause, ok := cp.Car.(*Pair)
	if !ok {
		return RaiseStep(newError(operandMismatchContinuation, "$cond clause must be a pair", cp.Car), cont)
	}
	return ContinueStep(clause.Car, env, &CondCont{
		frameBase: base(cont),
		Body:      clause.Cdr,
		Remaining: cp.Cdr,
		Env:       env,
	})
}

// DefineCont destructures the value of a $define! expression against
// its parameter tree once that value is known, recording the symbol as
// an unnamed operative's name as a diagnostic side effect.
type DefineCont struct {
	frameBase
	ParamTree Value
	Env       *Environment
}

func (f *DefineCont) PlugReduce(val Value) Step {
	if err := MatchParamTree(f.ParamTree, val, f.Env); err != nil {
		return RaiseStep(err, f.prev)
	}
	nameOperative(f.ParamTree, val)
	return f.prev.PlugReduce(Inert)
}

// nameOperative fills in a CompoundOperative's Name the first time a
// $define! binds it directly to a symbol, for diagnostics only.
func nameOperative(paramTree, val Value) {
	sym, ok := paramTree.(*Symbol)
	if !ok {
		return
	}
	switch c := val.(type) {
	case *CompoundOperative:
		if c.Name == "" {
			c.Name = sym.Name
		}
	case *Applicative:
		if co, ok := c.WrappedCombiner.(*CompoundOperative); ok && co.Name == "" {
			co.Name = sym.Name
		}
	}
}

// GuardClause pairs a selector continuation with an interceptor
// applicative, as accepted by guard-continuation's entry/exit lists.
type GuardClause struct {
	Selector    Cont
	Interceptor Value
}

// InnerGuardCont and OuterGuardCont are the pair of marker frames
// guard-continuation installs at one extent boundary: InnerGuardCont
// carries the exit-guard clauses, consulted when an abnormal pass
// leaves the guarded extent through this frame (it appears on the
// "exited" side of abnormal.go's walk); OuterGuardCont carries the
// entry-guard clauses, consulted when a pass enters the extent (it
// appears on the "entered" side). In ordinary (non-abnormal) flow both
// simply forward the plugged value unchanged.
type InnerGuardCont struct {
	frameBase
	Clauses []GuardClause
	Env     *Environment
}

func (f *InnerGuardCont) PlugReduce(val Value) Step { return f.prev.PlugReduce(val) }

type OuterGuardCont struct {
	frameBase
	Clauses []GuardClause
	Env     *Environment
}

func (f *OuterGuardCont) PlugReduce(val Value) Step { return f.prev.PlugReduce(val) }

// InterceptCont is woven into the continuation chain by abnormal pass
// (abnormal.go) between a source and destination continuation whenever
// a guard's clause matches. Plugging it calls the interceptor with the
// transferred value and an Applicative wrapping Outer — the raw
// continuation that would have run next without interception.
type InterceptCont struct {
	frameBase
	Interceptor Value
	Outer       Cont
	OuterEnv    *Environment
}

func (f *InterceptCont) PlugReduce(val Value) Step {
	c, ok := f.Interceptor.(Combiner)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "interceptor must be combinable", f.Interceptor), f.prev)
	}
	wrapped := Wrap(&ContinuationWrapper{Captured: f.Outer})
	return applyCombiner(c, Cons(val, Cons(wrapped, Null)), f.OuterEnv, f.prev)
}

// ExtendCont is returned by extend-continuation: on receiving a value
// it calls Receiver with that one value in Env, with prev as the
// continuation after Receiver completes.
type ExtendCont struct {
	frameBase
	Receiver Combiner
	Env      *Environment
}

func (f *ExtendCont) PlugReduce(val Value) Step {
	return applyCombiner(f.Receiver, Cons(val, Null), f.Env, f.prev)
}

// HandlePromiseResultCont resolves a Promise once its expression has
// been forced. A resolved nested promise's value is taken over
// directly; a pending nested promise has its Expr and Env copied into
// this promise, which is then forced again without growing the
// continuation. The nested promise object itself is not updated, so
// forcing it separately evaluates its expression again.
type HandlePromiseResultCont struct {
	frameBase
	Promise *Promise
}

func (f *HandlePromiseResultCont) PlugReduce(v Value) Step {
	p := f.Promise
	if p.Env == nil {
		// Resolved already (e.g. by a recursive force through the same
		// cell); use that value rather than the one just computed.
		return f.prev.PlugReduce(p.Value)
	}
	if p2, ok := v.(*Promise); ok {
		if p2.Env == nil {
			p.Value, p.Env = p2.Value, nil
			return f.prev.PlugReduce(p.Value)
		}
		p.Expr, p.Env = p2.Expr, p2.Env
		return ContinueStep(p.Expr, p.Env, &HandlePromiseResultCont{frameBase: base(f.prev), Promise: p})
	}
	p.Value, p.Env = v, nil
	return f.prev.PlugReduce(v)
}

// KeyedDynamicCont marks a dynamic extent during which a keyed dynamic
// variable is bound; the accessor (keyed.go) walks the continuation
// chain looking for one tagged with a matching Binder.
type KeyedDynamicCont struct {
	frameBase
	Binder *KeyedDynamicKey
	Value  Value
}

func (f *KeyedDynamicCont) PlugReduce(val Value) Step { return f.prev.PlugReduce(val) }

// ConstantCont discards the incoming value and plugs Fixed into prev
// instead, for wherever a result is already known regardless of what
// a nested evaluation produces.
type ConstantCont struct {
	frameBase
	Fixed Value
}

func (f *ConstantCont) PlugReduce(Value) Step { return f.prev.PlugReduce(f.Fixed) }

// BindsPredCont evaluates $binds?'s environment operand, then checks
// the (unevaluated, literal) symbol list against it once known.
type BindsPredCont struct {
	frameBase
	Symbols Value
}

func (f *BindsPredCont) PlugReduce(envVal Value) Step {
	target, ok := envVal.(*Environment)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "$binds?'s first argument must be an environment", envVal), f.prev)
	}
	for v := f.Symbols; v != Null; {
		vp, ok := v.(*Pair)
		if !ok {
			return RaiseStep(newError(combineWithNonListOperandsContinuation, "$binds? symbols must be a list", f.Symbols), f.prev)
		}
		sym, ok := vp.Car.(*Symbol)
		if !ok {
			return RaiseStep(newError(typeErrorContinuation, "$binds? requires symbols", vp.Car), f.prev)
		}
		if !target.Binds(sym) {
			return f.prev.PlugReduce(False)
		}
		v = vp.Cdr
	}
	return f.prev.PlugReduce(True)
}

// applyCombiner fully unwraps any Applicative layers to reach the core
// operative, then combines already-evaluated args directly against it.
// This is how apply, extend-continuation, and intercept invocation hand
// a value list to a combiner without re-evaluating it: operatives never
// evaluate their operand tree, so passing literal values through
// Combine is exactly correct no matter how many Applicative layers were
// stripped to get there.
func applyCombiner(c Combiner, args Value, env *Environment, cont Cont) Step {
	for {
		app, ok := c.(*Applicative)
		if !ok {
			break
		}
		c = app.WrappedCombiner
	}
	return c.Combine(args, env, cont)
}

// singleOperand extracts the one required operand from an evaluated
// operand list, signalling arity-mismatch otherwise.
func singleOperand(operands Value) (Value, *ErrorObject) {
	p, ok := operands.(*Pair)
	if !ok || p.Cdr != Null {
		return nil, newError(arityMismatchContinuation, "expected exactly one argument", operands)
	}
	return p.Car, nil
}

// AndCont and OrCont drive $and?/$or?'s short-circuit evaluation: each
// holds the not-yet-evaluated rest of the operand list, testing the
// just-plugged value against the short-circuit condition before moving
// on (false for $and?, true for $or?). An empty operand list for either
// form must be handled by the caller before constructing these.
type AndCont struct {
	frameBase
	Rest Value
	Env  *Environment
}

func (f *AndCont) PlugReduce(val Value) Step {
	if IsFalse(val) {
		return f.prev.PlugReduce(False)
	}
	if !IsTrue(val) {
		return RaiseStep(newError(typeErrorContinuation, "$and? operand must be a boolean", val), f.prev)
	}
	if f.Rest == Null {
		return f.prev.PlugReduce(True)
	}
	p, ok := f.Rest.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$and? operands must be a list", f.Rest), f.prev)
	}
	return ContinueStep(p.Car, f.Env, &AndCont{frameBase: base(f.prev), Rest: p.Cdr, Env: f.Env})
}

type OrCont struct {
	frameBase
	Rest Value
	Env  *Environment
}

func (f *OrCont) PlugReduce(val Value) Step {
	if IsTrue(val) {
		return f.prev.PlugReduce(True)
	}
	if !IsFalse(val) {
		return RaiseStep(newError(typeErrorContinuation, "$or? operand must be a boolean", val), f.prev)
	}
	if f.Rest == Null {
		return f.prev.PlugReduce(False)
	}
	p, ok := f.Rest.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$or? operands must be a list", f.Rest), f.prev)
	}
	return ContinueStep(p.Car, f.Env, &OrCont{frameBase: base(f.prev), Rest: p.Cdr, Env: f.Env})
}

// LetCont accumulates $let's sequentially evaluated bindings into a
// fresh child environment; once all are bound it evaluates the body in
// that environment.
type LetCont struct {
	frameBase
	Sym       *Symbol
	Remaining Value // list of (symbol expr) pairs still to evaluate
	Body      Value
	Local     *Environment
	DynEnv    *Environment
}

func (f *LetCont) PlugReduce(val Value) Step {
	f.Local.Set(f.Sym, val)
	return evalLetBindings(f.Remaining, f.Body, f.Local, f.DynEnv, f.prev)
}

// evalLetBindings evaluates each (symbol expr) binding of $let in the
// outer dynamic environment, left to right, installing each result into
// local as it resolves; once exhausted it evaluates body in local.
func evalLetBindings(bindings, body Value, local, dynEnv *Environment, cont Cont) Step {
	if bindings == Null {
		return evalSequence(body, local, cont)
	}
	bp, ok := bindings.(*Pair)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "$let bindings must be a list", bindings), cont)
	}
	binding, ok := bp.Car.(*Pair)
	if !ok {
		return RaiseStep(newError(operandMismatchContinuation, "$let binding must be (symbol expr)", bp.Car), cont)
	}
	sym, ok := binding.Car.(*Symbol)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "$let binding name must be a symbol", binding.Car), cont)
	}
	exprPair, ok := binding.Cdr.(*Pair)
	if !ok || exprPair.Cdr != Null {
		return RaiseStep(newError(operandMismatchContinuation, "$let binding must be (symbol expr)", bp.Car), cont)
	}
	return ContinueStep(exprPair.Car, dynEnv, &LetCont{
		frameBase: base(cont),
		Sym:       sym,
		Remaining: bp.Cdr,
		Body:      body,
		Local:     local,
		DynEnv:    dynEnv,
	})
}

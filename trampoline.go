// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// Hooks lets an embedder observe evaluation without touching the
// trampoline itself: OnEval fires before each expression is
// interpreted, OnPlugReduce before eval delivers a self-evaluating
// value or a symbol's binding to a continuation, and OnAbnormalPass
// before a raised error is passed to its destination continuation
// (invoking a captured continuation does not fire it). A nil field is
// simply skipped; see hooks.go for the debug-on/debug-off
// builtins that install and remove one.
type Hooks struct {
	OnEval         func(expr Value, env *Environment, cont Cont)
	OnPlugReduce   func(val Value, cont Cont)
	OnAbnormalPass func(val Value, src, dst Cont)
}

// eval turns one expression into the next Step: self-evaluating values
// plug directly; symbols resolve through env; pairs install a
// CombineCont and transfer to evaluating the operator.
func eval(expr Value, env *Environment, cont Cont, h *Hooks) Step {
	if h != nil && h.OnEval != nil {
		h.OnEval(expr, env, cont)
	}
	switch x := expr.(type) {
	case *Symbol:
		v, ok := env.Lookup(x)
		if !ok {
			return RaiseStep(newError(symbolNotFoundContinuation, "unbound symbol: "+x.Name, x), cont)
		}
		return plug(v, cont, h)
	case *Pair:
		return ContinueStep(x.Car, env, &CombineCont{frameBase: base(cont), Operands: x.Cdr, Env: env})
	default:
		return plug(expr, cont, h)
	}
}

// plug delivers a value produced by eval (a self-evaluating expression
// or a symbol's binding) to cont, calling OnPlugReduce first.
// PlugReduce methods that hand a value to another continuation (most of
// frame.go) call that continuation directly rather than going through
// plug, so OnPlugReduce does not see those deliveries.
func plug(val Value, cont Cont, h *Hooks) Step {
	if h != nil && h.OnPlugReduce != nil {
		h.OnPlugReduce(val, cont)
	}
	return cont.PlugReduce(val)
}

// Run drives the trampoline to completion from an initial (expr, env,
// cont) triple, returning the value eventually plugged into the root
// (or terminal) continuation. Every PlugReduce and Combine
// implementation returns a Step instead of recursing itself, which is
// what gives Kernel's tail calls and captured continuations bounded Go
// stack depth regardless of Kernel-level recursion depth.
func Run(expr Value, env *Environment, cont Cont) Value {
	return RunHooked(expr, env, cont, nil)
}

// RunHooked is Run with observation hooks installed.
func RunHooked(expr Value, env *Environment, cont Cont, h *Hooks) Value {
	step := eval(expr, env, cont, h)
	for {
		switch step.Kind {
		case StepContinue:
			step = eval(step.Expr, step.Env, step.Cont, h)
		case StepRaise:
			if h != nil && h.OnAbnormalPass != nil {
				h.OnAbnormalPass(step.Err, step.Src, step.Err.Dest)
			}
			step = abnormallyPass(step.Err, step.Src, step.Err.Dest)
		case StepTerminate:
			return step.Result
		}
	}
}

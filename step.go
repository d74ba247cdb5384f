// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// Step is the trampoline's sum-type result. It replaces the reference
// implementation's exception-driven escape (Done/KernelExit/
// AdHocException) with an explicit value the driving loop matches on:
// exactly one of the three shapes below is meaningful per Step,
// selected by Kind.
type Step struct {
	Kind StepKind

	// Continue fields: the next (expr, env, cont) triple to evaluate.
	Expr Value
	Env  *Environment
	Cont Cont

	// Raise fields: an error caught at the trampoline boundary, about to
	// be abnormally passed from Src (the continuation active when the
	// error was signalled) to Err.Dest.
	Err *ErrorObject
	Src Cont

	// Terminate field: the final value, once the root continuation (or
	// an embedding's Terminal continuation) has been plugged.
	Result Value
}

// StepKind tags which fields of a Step are meaningful.
type StepKind int

const (
	// StepContinue carries a new (Expr, Env, Cont) triple for the
	// trampoline to loop on.
	StepContinue StepKind = iota
	// StepRaise carries an Err the trampoline must abnormally pass from
	// Src to its destination continuation.
	StepRaise
	// StepTerminate carries the final Result: the root continuation (or
	// an embedding's Terminal continuation) was plugged.
	StepTerminate
)

// ContinueStep builds a Step that hands the trampoline a new triple.
func ContinueStep(expr Value, env *Environment, cont Cont) Step {
	return Step{Kind: StepContinue, Expr: expr, Env: env, Cont: cont}
}

// RaiseStep builds a Step that signals err for abnormal pass from src,
// the continuation that was active when the error was signalled.
func RaiseStep(err *ErrorObject, src Cont) Step {
	return Step{Kind: StepRaise, Err: err, Src: src}
}

// TerminateStep builds a Step that ends the trampoline with value v.
func TerminateStep(v Value) Step {
	return Step{Kind: StepTerminate, Result: v}
}

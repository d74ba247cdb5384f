// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import (
	"fmt"
	"io"
	"os"
)

// activeHooks is the process-wide Hooks installed by debug-on and torn
// down by debug-off. Run itself is hookless (see RunHooked in
// trampoline.go); the driver passes this value to RunHooked for each
// top-level expression when it has no hooks of its own, so a Kernel
// program can turn tracing on and off between its top-level
// expressions without carrying a full interactive debugger.
var activeHooks *Hooks

// DebugOutput is where debug-on's trace lines and print-tb's backtrace
// go; the driver may redirect it (e.g. to a REPL's configured writer).
var DebugOutput io.Writer = os.Stderr

// ActiveHooks returns the hooks installed by debug-on, or nil.
func ActiveHooks() *Hooks { return activeHooks }

// registerIOPrimitives binds load, the print family, the
// debug-on/debug-off toggles, and exit.
func registerIOPrimitives(env *Environment) {
	bindPrimitive(env, "load", primLoad)
	bindPrimitive(env, "print", primPrint)
	bindPrimitive(env, "println", primPrintln)
	bindPrimitive(env, "print-tb", primPrintTB)
	bindPrimitive(env, "debug-on", primDebugOn)
	bindPrimitive(env, "debug-off", primDebugOff)
	bindPrimitive(env, "exit", primExit)
}

// primExit implements a graceful shutdown: an abnormal pass straight
// to the nearest RootCont on the calling continuation's own Prev
// chain, skipping any intervening BaseErrorCont/guard frames so the
// program terminates cleanly instead of being reported as an error.
// (exit) exits with #inert; (exit v) exits with v.
func primExit(operands Value, env *Environment, cont Cont) Step {
	val := Value(Inert)
	if operands != Null {
		v, err := singleOperand(operands)
		if err != nil {
			return RaiseStep(err, cont)
		}
		val = v
	}
	var root Cont
	for c := Cont(cont); c != nil; c = c.Prev() {
		if rc, ok := c.(*RootCont); ok {
			root = rc
			break
		}
	}
	if root == nil {
		// No RootCont on the chain (an embedding using a bare Terminal
		// continuation instead): fall back to plugging the current
		// continuation directly.
		return cont.PlugReduce(val)
	}
	return abnormallyPass(val, cont, root)
}

// LoadSource parses a Kernel source file into its sequence of top-level
// expressions. It is nil until internal/driver wires it to
// internal/reader; the indirection exists because internal/reader
// imports this package (to produce kernel.Value trees), so this package
// cannot import it back without a cycle.
var LoadSource func(file string) ([]Value, error)

// primLoad implements load(filename): read and parse filename, then
// evaluate its expressions as a body sequence in the calling
// environment, tail-calling on the last one exactly like a $sequence
// body. This is how user programs pull in libraries; the driver
// bootstraps kernel.k/extension.k through the same LoadSource but
// evaluates their expressions itself.
func primLoad(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	path, ok := v.(*KString)
	if !ok {
		return RaiseStep(newError(typeErrorContinuation, "load requires a string filename", v), cont)
	}
	if LoadSource == nil {
		return RaiseStep(newError(fileNotFoundContinuation, "load is unavailable: no source loader wired", v), cont)
	}
	exprs, loadErr := LoadSource(path.Value)
	if loadErr != nil {
		return RaiseStep(newError(fileNotFoundContinuation, loadErr.Error(), v), cont)
	}
	return evalSequence(sliceToList(exprs), env, cont)
}

func primPrint(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "print requires a list of values", operands), cont)
	}
	defer releaseScratch(vs)
	for i, v := range *vs {
		if i > 0 {
			fmt.Fprint(DebugOutput, " ")
		}
		fmt.Fprint(DebugOutput, String(v))
	}
	return cont.PlugReduce(Inert)
}

func primPrintln(operands Value, env *Environment, cont Cont) Step {
	vs, ok := listToSlice(operands)
	if !ok {
		return RaiseStep(newError(combineWithNonListOperandsContinuation, "println requires a list of values", operands), cont)
	}
	defer releaseScratch(vs)
	for i, v := range *vs {
		if i > 0 {
			fmt.Fprint(DebugOutput, " ")
		}
		fmt.Fprint(DebugOutput, String(v))
	}
	fmt.Fprintln(DebugOutput)
	return cont.PlugReduce(Inert)
}

// primPrintTB prints a backtrace of the calling continuation's frame
// chain to DebugOutput, innermost first, for interactive debugging of a
// runaway or erroring computation. Frames are identified by Go type
// name; NamedCont frames (the standard error continuations) print their
// proper name instead.
func primPrintTB(operands Value, env *Environment, cont Cont) Step {
	fmt.Fprintln(DebugOutput, "backtrace:")
	depth := 0
	for c := Cont(cont); c != nil; c = c.Prev() {
		if nc, ok := c.(*NamedCont); ok {
			fmt.Fprintf(DebugOutput, "  #%d %s\n", depth, nc.Name)
		} else {
			fmt.Fprintf(DebugOutput, "  #%d %T\n", depth, c)
		}
		depth++
	}
	return cont.PlugReduce(Inert)
}

// primDebugOn installs an OnEval/OnPlugReduce/OnAbnormalPass trace that
// writes one line per trampoline step to DebugOutput.
func primDebugOn(operands Value, env *Environment, cont Cont) Step {
	activeHooks = &Hooks{
		OnEval: func(expr Value, env *Environment, cont Cont) {
			fmt.Fprintf(DebugOutput, "eval: %s\n", String(expr))
		},
		OnPlugReduce: func(val Value, cont Cont) {
			fmt.Fprintf(DebugOutput, "plug: %s -> %T\n", String(val), cont)
		},
		OnAbnormalPass: func(val Value, src, dst Cont) {
			fmt.Fprintf(DebugOutput, "abnormal-pass: %s\n", String(val))
		},
	}
	return cont.PlugReduce(Inert)
}

func primDebugOff(operands Value, env *Environment, cont Cont) Step {
	activeHooks = nil
	return cont.PlugReduce(Inert)
}

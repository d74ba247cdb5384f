// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package kernel implements the evaluation core of Kernel, a
// minimalist Scheme-like language distinguished by first-class
// operatives (fexprs), first-class environments, and first-class
// continuations with dynamic-extent guards.
//
// # Design Philosophy
//
// The evaluator is trampolined: there is no native Go call stack
// standing in for Kernel control state. The full control state is a
// single (expr, env, cont) triple, and every tail position — the last
// element of a sequence, the branches of $if, the body of an applied
// compound operative — hands that triple back to the same driving loop
// instead of recursing. This is what lets unbounded iterative Kernel
// programs run in bounded Go stack.
//
// # Defunctionalized Continuations
//
// Continuations are not Go closures. Following Reynolds' defunctionalization,
// each continuation shape (sequence, if, cond, argument gathering, guard,
// intercept, ...) is a concrete frame type implementing [Cont], whose
// step is its type's PlugReduce method rather than a stored function
// value.
//
// # Core Types
//
//   - [Value]: the tagged union of every runtime value (strings, symbols,
//     numbers, pairs, environments, combiners, continuations, ...).
//   - [Environment]: a parented symbol→value mapping.
//   - [Cont]: the continuation frame taxonomy; see frame.go.
//   - [Step]: the trampoline's sum-type result — Continue, Raise, or
//     Terminate. See step.go.
//
// # Abnormal Pass
//
// First-class continuations are invoked by abnormal pass, not by
// return: applying a captured continuation transfers control from the
// current continuation to the captured one, running exit interceptors
// installed by intervening guards on the way out and entry interceptors
// on the way in. See abnormal.go.
//
// # Ground Environment
//
// [NewGroundEnvironment] builds the environment containing every
// primitive combiner this package implements; the internal/driver
// package's NewStandard then loads kernel.k, and NewExtended also loads
// extension.k, verbatim, exactly as a freshly started interpreter would.
package kernel

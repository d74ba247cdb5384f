// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// NewGroundEnvironment builds the ground environment: no parents, every
// primitive operative and applicative this package implements natively
// bound by name, plus the standard error-continuation hierarchy spliced
// beneath root. Kernel-level library procedures (the rest of the
// standard environment) are layered on top by loading kernel.k through
// the driver package, splitting primitives (native Go) from the
// bootstrap library (written in Kernel itself).
func NewGroundEnvironment(root Cont) *Environment {
	InstallStandardContinuations(root)

	env := NewEnvironment(nil)
	env.Set(Intern("root-continuation"), Wrap(&ContinuationWrapper{Captured: root}))
	for name, cont := range namedContinuations {
		env.Set(Intern(name), Wrap(&ContinuationWrapper{Captured: cont}))
	}

	registerControlPrimitives(env)
	registerPairPrimitives(env)
	registerCxrPrimitives(env)
	registerPredicatePrimitives(env)
	registerContinuationPrimitives(env)
	registerStringPrimitives(env)
	registerNumericPrimitives(env)
	registerIOPrimitives(env)
	registerPromisePrimitives(env)
	registerEncapsulationPrimitives(env)
	registerKeyedPrimitives(env)

	return env
}

// bindPrimitive installs name as an applicative wrapping a native
// PrimitiveOperative, the common case for every ground procedure whose
// operands should be evaluated before the Go function runs.
func bindPrimitive(env *Environment, name string, fn PrimitiveFunc) {
	env.Set(Intern(name), Wrap(&PrimitiveOperative{Name: name, Fn: fn}))
}

// bindOperative installs name as a bare operative, for the few ground
// bindings (the $-prefixed special forms) that must see their operands
// unevaluated.
func bindOperative(env *Environment, name string, fn PrimitiveFunc) {
	env.Set(Intern(name), &PrimitiveOperative{Name: name, Fn: fn})
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "fmt"

// Pos records a source position an optional diagnostic can point at.
// The reader fills this in; synthetic values (builtins, derived pairs)
// leave it zero.
type Pos struct {
	File string
	Line int
	Col  int
}

// Value is the marker interface every runtime value implements. It is a
// pure tag: Equal, String, TypeName and the evaluator dispatch on it by
// type switch. Combiners and continuation frames carry their own
// methods (Combine, PlugReduce) on top of it.
type Value interface {
	value() // unexported marker method
}

// Combiner is the subset of Value that can appear in combination
// position: operatives and applicatives.
type Combiner interface {
	Value
	// Combine evaluates (or not, for operatives) operands and transfers
	// control to the combiner's effect. It never runs to completion
	// itself — it returns the next trampoline step.
	Combine(operands Value, env *Environment, cont Cont) Step
}

// ---- self-evaluating atoms ----

// KString is an immutable byte string.
type KString struct {
	Pos   Pos
	Value string
}

func (*KString) value() {}

// Symbol is an interned identifier. Two symbols with equal name are
// the same *Symbol pointer; see symbol.go.
type Symbol struct {
	Name string
}

func (*Symbol) value() {}

// Fixnum is a machine-width signed exact integer.
type Fixnum struct {
	Pos   Pos
	Value int64
}

func (*Fixnum) value() {}

// Bignum is an arbitrary-precision exact integer, used once Fixnum
// arithmetic would overflow. Normalizes back to Fixnum when it fits;
// see numeric.go.
type Bignum struct {
	Pos   Pos
	Value *bigInt
}

func (*Bignum) value() {}

// InfinitySign distinguishes the two exact infinities.
type InfinitySign int

const (
	PositiveInfinity InfinitySign = 1
	NegativeInfinity InfinitySign = -1
)

// Infinity is one of the two unique exact-infinity sentinels (PosInf
// and NegInf); arithmetic returns these rather than fresh values.
type Infinity struct {
	Sign InfinitySign
}

func (*Infinity) value() {}

// Null is the unique empty-list sentinel.
type nullType struct{}

func (*nullType) value() {}

// Ignore is the unique #ignore value used in parameter trees to
// discard bindings.
type ignoreType struct{}

func (*ignoreType) value() {}

// Inert is the unique #inert value, the result of actions with no
// useful value.
type inertType struct{}

func (*inertType) value() {}

// Boolean is one of the two unique boolean sentinels.
type Boolean struct {
	Value bool
}

func (*Boolean) value() {}

// Singletons shared process-wide: there is exactly one #inert, one
// #ignore, one (), and one each of #t/#f, so pointer equality (eq?)
// correctly identifies them.
var (
	Null  Value = &nullType{}
	Ignore Value = &ignoreType{}
	Inert Value = &inertType{}
	True  Value = &Boolean{Value: true}
	False Value = &Boolean{Value: false}
	PosInf Value = &Infinity{Sign: PositiveInfinity}
	NegInf Value = &Infinity{Sign: NegativeInfinity}
)

// Bool converts a Go bool to the corresponding Kernel boolean singleton.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// IsTrue reports whether v is exactly the true singleton.
func IsTrue(v Value) bool {
	return v == True
}

// IsFalse reports whether v is exactly the false singleton.
func IsFalse(v Value) bool {
	return v == False
}

// ---- compound data ----

// Pair is a cons cell. Both Car and Cdr are always non-nil Values.
type Pair struct {
	Pos      Pos
	Car, Cdr Value
}

func (*Pair) value() {}

// Cons builds a Pair.
func Cons(car, cdr Value) *Pair {
	return &Pair{Car: car, Cdr: cdr}
}

// ---- combiners ----

// Operative is the common tag for PrimitiveOperative and
// CompoundOperative, combiners that receive their operands unevaluated.
type Operative interface {
	Combiner
	operative()
}

// CompoundOperative is created by $vau: it captures its static
// environment and evaluates its body, in tail position, against a
// freshly matched parameter tree.
type CompoundOperative struct {
	Formals   Value // parameter tree matched against operands
	EnvFormal Value // symbol or #ignore, bound to the caller's dynamic env
	Body      Value // list of body expressions
	StaticEnv *Environment
	Name      string // filled in once by the first $define! that binds it
}

func (*CompoundOperative) value()     {}
func (*CompoundOperative) operative() {}

// Combine applies a compound operative: a fresh child environment of
// StaticEnv, formals matched against operands, EnvFormal bound to the
// dynamic env, body evaluated as a sequence in tail position.
func (op *CompoundOperative) Combine(operands Value, env *Environment, cont Cont) Step {
	local := NewEnvironment([]*Environment{op.StaticEnv})
	if err := MatchParamTree(op.Formals, operands, local); err != nil {
		return RaiseStep(err, cont)
	}
	if err := MatchParamTree(op.EnvFormal, env, local); err != nil {
		return RaiseStep(err, cont)
	}
	return evalSequence(op.Body, local, cont)
}

// PrimitiveFunc is the native implementation behind a PrimitiveOperative.
// It receives the unevaluated operand list, the dynamic environment, and
// the continuation it must transfer control to.
type PrimitiveFunc func(operands Value, env *Environment, cont Cont) Step

// PrimitiveOperative wraps a native Go function as a Kernel operative.
type PrimitiveOperative struct {
	Name string
	Fn   PrimitiveFunc
}

func (*PrimitiveOperative) value()     {}
func (*PrimitiveOperative) operative() {}

func (p *PrimitiveOperative) Combine(operands Value, env *Environment, cont Cont) Step {
	return p.Fn(operands, env, cont)
}

// Applicative wraps any Combiner so its operands are evaluated
// left-to-right before being passed to the wrapped combiner.
// Applicatives nest to any depth: wrapping an Applicative yields a new
// Applicative whose WrappedCombiner is the outer one.
type Applicative struct {
	WrappedCombiner Combiner
}

func (*Applicative) value() {}

// Combine evaluates operands left-to-right via EvalArgs/GatherArgs
// continuations, then applies WrappedCombiner to the gathered list.
func (a *Applicative) Combine(operands Value, env *Environment, cont Cont) Step {
	apply := &ApplyCont{frameBase: base(cont), Combiner: a.WrappedCombiner, Env: env}
	return evalArgs(operands, env, apply)
}

// Wrap creates an Applicative around any Combiner.
func Wrap(c Combiner) *Applicative {
	return &Applicative{WrappedCombiner: c}
}

// Unwrap removes exactly one applicative layer. Callers must check
// that v is an *Applicative first; this is a type error otherwise.
func Unwrap(a *Applicative) Combiner {
	return a.WrappedCombiner
}

// ContinuationWrapper is the Combiner a continuation is packaged as
// (continuation->applicative, or a captured continuation handed to a
// call/cc receiver). Like any other Combiner reached through Wrap, its
// Combine is only ever invoked with an already-evaluated operand list —
// here always exactly one operand — and triggers abnormal pass to the
// captured continuation instead of an ordinary plug.
type ContinuationWrapper struct {
	Captured Cont
}

func (*ContinuationWrapper) value() {}

func (w *ContinuationWrapper) Combine(operands Value, env *Environment, cont Cont) Step {
	v, err := singleOperand(operands)
	if err != nil {
		return RaiseStep(err, cont)
	}
	return abnormallyPass(v, cont, w.Captured)
}

// ---- encapsulation ----

// EncapsulationType is an opaque identity token created by
// make-encapsulation-type; only an accessor tied to the same type may
// unwrap an EncapsulatedObject.
type EncapsulationType struct {
	name string // diagnostic only; identity is the pointer
}

func (*EncapsulationType) value() {}

// EncapsulatedObject hides a payload behind an EncapsulationType.
type EncapsulatedObject struct {
	Type    *EncapsulationType
	Payload Value
}

func (*EncapsulatedObject) value() {}

// ---- promises ----

// Promise is a memoized thunk cell. Pending promises hold (Expr, Env);
// resolved promises hold (Value, nil Env). See promise.go for the force
// algorithm, including splicing.
type Promise struct {
	Expr  Value
	Env   *Environment // nil once resolved
	Value Value        // valid once Env is nil
}

func (*Promise) value() {}

// ---- keyed variables ----

// KeyedDynamicKey is the identity behind a keyed dynamic variable pair
// (binder, accessor) created by make-keyed-dynamic-variable.
type KeyedDynamicKey struct{ name string }

func (*KeyedDynamicKey) value() {}

// KeyedStaticKey is the identity behind a keyed static variable pair
// created by make-keyed-static-variable.
type KeyedStaticKey struct{ name string }

func (*KeyedStaticKey) value() {}

// String renders a Value the way Kernel's writer would, for print,
// println, and error messages. It is not a reader round-trip guarantee
// for cyclic structures.
func String(v Value) string {
	var buf []byte
	buf = appendValue(buf, v)
	return string(buf)
}

func appendValue(buf []byte, v Value) []byte {
	switch x := v.(type) {
	case *KString:
		return fmt.Appendf(buf, "%q", x.Value)
	case *Symbol:
		return append(buf, x.Name...)
	case *Fixnum:
		return fmt.Appendf(buf, "%d", x.Value)
	case *Bignum:
		return fmt.Appendf(buf, "%s", x.Value.String())
	case *Infinity:
		if x.Sign == PositiveInfinity {
			return append(buf, "#e+infinity"...)
		}
		return append(buf, "#e-infinity"...)
	case *Boolean:
		if x.Value {
			return append(buf, "#t"...)
		}
		return append(buf, "#f"...)
	case *Pair:
		buf = append(buf, '(')
		buf = appendValue(buf, x.Car)
		rest := x.Cdr
		for {
			if rest == Null {
				break
			}
			if p, ok := rest.(*Pair); ok {
				buf = append(buf, ' ')
				buf = appendValue(buf, p.Car)
				rest = p.Cdr
				continue
			}
			buf = append(buf, " . "...)
			buf = appendValue(buf, rest)
			break
		}
		return append(buf, ')')
	case *EncapsulatedObject:
		return fmt.Appendf(buf, "#[encapsulated %s]", x.Type.name)
	case *Environment:
		return append(buf, "#[environment]"...)
	case *CompoundOperative:
		if x.Name != "" {
			return fmt.Appendf(buf, "#[operative %s]", x.Name)
		}
		return append(buf, "#[operative]"...)
	case *PrimitiveOperative:
		return fmt.Appendf(buf, "#[primitive %s]", x.Name)
	case *Applicative:
		return append(appendValue(append(buf, "#[applicative "...), valueOf(x.WrappedCombiner)), ']')
	case *Promise:
		return append(buf, "#[promise]"...)
	default:
		switch v {
		case Null:
			return append(buf, "()"...)
		case Ignore:
			return append(buf, "#ignore"...)
		case Inert:
			return append(buf, "#inert"...)
		}
		return fmt.Appendf(buf, "#[%T]", v)
	}
}

func valueOf(c Combiner) Value { return c.(Value) }

// Equal implements Kernel's structural equal?: atoms compare by value,
// pairs recursively by structure, everything else by identity.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	switch x := a.(type) {
	case *KString:
		y, ok := b.(*KString)
		return ok && x.Value == y.Value
	case *Fixnum:
		return numericEqual(a, b)
	case *Bignum:
		return numericEqual(a, b)
	case *Infinity:
		y, ok := b.(*Infinity)
		return ok && x.Sign == y.Sign
	case *Pair:
		y, ok := b.(*Pair)
		return ok && Equal(x.Car, y.Car) && Equal(x.Cdr, y.Cdr)
	default:
		return false
	}
}

// IsSimple reports whether a value is self-evaluating (everything
// except Pair and Symbol).
func IsSimple(v Value) bool {
	switch v.(type) {
	case *Pair, *Symbol:
		return false
	default:
		return true
	}
}

// TypeName returns the variant name used in diagnostics.
func TypeName(v Value) string {
	switch v.(type) {
	case *KString:
		return "string"
	case *Symbol:
		return "symbol"
	case *Fixnum, *Bignum:
		return "number"
	case *Infinity:
		return "number"
	case *Boolean:
		return "boolean"
	case *Pair:
		return "pair"
	case *Environment:
		return "environment"
	case *CompoundOperative, *PrimitiveOperative:
		return "operative"
	case *Applicative:
		return "applicative"
	case *ContinuationWrapper:
		return "applicative"
	case *EncapsulationType:
		return "encapsulation-type"
	case *EncapsulatedObject:
		return "encapsulated-object"
	case *Promise:
		return "promise"
	case *ErrorObject:
		return "error-object"
	default:
		switch v {
		case Null:
			return "null"
		case Ignore:
			return "ignore"
		case Inert:
			return "inert"
		}
		return "value"
	}
}

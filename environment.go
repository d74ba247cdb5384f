// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// Environment is a parented mapping from symbol to value. Lookup walks
// the parent list left-to-right, depth-first: the first parent that can
// resolve the symbol wins. There is no self-inclusion check; a caller
// that makes an environment its own ancestor gets an infinite loop.
type Environment struct {
	Parents  []*Environment
	bindings map[*Symbol]Value

	keyedStaticKey   *KeyedStaticKey
	keyedStaticValue Value
}

func (*Environment) value() {}

// NewEnvironment creates an empty frame whose parents are the given
// list, implementing make-environment.
func NewEnvironment(parents []*Environment) *Environment {
	return &Environment{Parents: parents, bindings: make(map[*Symbol]Value)}
}

// Lookup returns the binding for sym found in the first parent chain
// match, depth-first left-to-right. It returns ok=false (the caller
// raises symbol-not-found) when no frame binds sym.
func (e *Environment) Lookup(sym *Symbol) (Value, bool) {
	if v, ok := e.bindings[sym]; ok {
		return v, true
	}
	for _, p := range e.Parents {
		if v, ok := p.Lookup(sym); ok {
			return v, true
		}
	}
	return nil, false
}

// Set unconditionally installs a binding in the current frame, shadowing
// any parent binding. This is $define!'s primitive effect once the
// parameter tree has matched down to a bare symbol.
func (e *Environment) Set(sym *Symbol, v Value) {
	e.bindings[sym] = v
}

// Binds reports whether sym resolves anywhere in the parent chain,
// implementing $binds?.
func (e *Environment) Binds(sym *Symbol) bool {
	_, ok := e.Lookup(sym)
	return ok
}

// LocalBindings exposes the current frame's own bindings (not parents),
// for debugging. Keyed static variable search (see keyed.go) does not
// use it.
func (e *Environment) LocalBindings() map[*Symbol]Value {
	return e.bindings
}

// bindKeyedStatic tags e as holding one keyed static variable binding.
// make-keyed-static-variable's accessor walks up the environment's
// parents (not the continuation chain) looking for a frame tagged with
// a matching key; see keyed.go.
func (e *Environment) bindKeyedStatic(key *KeyedStaticKey, v Value) {
	e.keyedStaticKey = key
	e.keyedStaticValue = v
}

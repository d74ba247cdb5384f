// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "sync"

// symbolTable interns Symbol values process-wide so that symbol-eq?
// reduces to pointer identity: two symbols with equal name are always
// the same *Symbol.
var symbolTable = struct {
	mu   sync.Mutex
	byID map[string]*Symbol
}{byID: make(map[string]*Symbol, 256)}

// Intern returns the unique *Symbol for name, creating it on first use.
func Intern(name string) *Symbol {
	symbolTable.mu.Lock()
	defer symbolTable.mu.Unlock()
	if s, ok := symbolTable.byID[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	symbolTable.byID[name] = s
	return s
}

// SymbolEq reports whether a and b are the same interned symbol. It is
// equivalent to a == b for two *Symbol values but documents intent at
// call sites implementing Kernel's symbol-eq?.
func SymbolEq(a, b *Symbol) bool {
	return a == b
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// MatchParamTree destructures val against tree, binding symbols found
// in tree into env. It implements the four valid parameter-tree
// shapes:
//   - #ignore: matches anything, binds nothing;
//   - a symbol: matches anything, binds that symbol to val;
//   - (): matches only (), binds nothing;
//   - a pair: val must be a pair, matched recursively car-to-car,
//     cdr-to-cdr.
//
// Any other shape in tree is always an operand-mismatch error,
// regardless of val.
func MatchParamTree(tree, val Value, env *Environment) *ErrorObject {
	switch t := tree.(type) {
	case *ignoreType:
		return nil
	case *Symbol:
		env.Set(t, val)
		return nil
	case *nullType:
		if val != Null {
			return newError(operandMismatchContinuation, "too many operands", val)
		}
		return nil
	case *Pair:
		p, ok := val.(*Pair)
		if !ok {
			return newError(operandMismatchContinuation, "too few operands", val)
		}
		if err := MatchParamTree(t.Car, p.Car, env); err != nil {
			return err
		}
		return MatchParamTree(t.Cdr, p.Cdr, env)
	default:
		return newError(operandMismatchContinuation, "invalid parameter-tree shape", tree)
	}
}

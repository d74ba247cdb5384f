// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "math/big"

// bigInt is the arbitrary-precision integer type backing Bignum. The
// pack carries no third-party bignum library, and math/big is the
// standard-library answer to exact unbounded integers; see DESIGN.md.
type bigInt = big.Int

// normalizeInt returns the narrowest exact-integer Value representing
// n: a Fixnum if n fits in int64, a Bignum otherwise.
func normalizeInt(n *bigInt) Value {
	if n.IsInt64() {
		return &Fixnum{Value: n.Int64()}
	}
	return &Bignum{Value: n}
}

// toBig widens any exact-integer Value to a *bigInt for arithmetic.
// Infinities are handled separately by callers; passing one here is a
// programming error.
func toBig(v Value) *bigInt {
	switch x := v.(type) {
	case *Fixnum:
		return big.NewInt(x.Value)
	case *Bignum:
		return new(bigInt).Set(x.Value)
	default:
		panic("kernel: toBig of non-integer value")
	}
}

func isExactInteger(v Value) bool {
	switch v.(type) {
	case *Fixnum, *Bignum:
		return true
	default:
		return false
	}
}

func isNumber(v Value) bool {
	if isExactInteger(v) {
		return true
	}
	_, ok := v.(*Infinity)
	return ok
}

// numericEqual implements =? for the exact-integer and infinity tower:
// two infinities are equal iff same sign; an infinity is never equal to
// a finite number; two finite exact integers compare by value.
func numericEqual(a, b Value) bool {
	ai, aIsInf := a.(*Infinity)
	bi, bIsInf := b.(*Infinity)
	switch {
	case aIsInf && bIsInf:
		return ai.Sign == bi.Sign
	case aIsInf || bIsInf:
		return false
	default:
		return toBig(a).Cmp(toBig(b)) == 0
	}
}

// numericLess implements <? between two numbers already known to be
// numbers (see isNumber).
func numericLess(a, b Value) bool {
	ai, aIsInf := a.(*Infinity)
	bi, bIsInf := b.(*Infinity)
	switch {
	case aIsInf && bIsInf:
		return ai.Sign == NegativeInfinity && bi.Sign == PositiveInfinity
	case aIsInf:
		return ai.Sign == NegativeInfinity
	case bIsInf:
		return bi.Sign == PositiveInfinity
	default:
		return toBig(a).Cmp(toBig(b)) < 0
	}
}

// numericAdd implements +, raising a recoverable error for the one
// indeterminate case: adding the two opposite infinities.
func numericAdd(a, b Value) (Value, *ErrorObject) {
	ai, aIsInf := a.(*Infinity)
	bi, bIsInf := b.(*Infinity)
	switch {
	case aIsInf && bIsInf:
		if ai.Sign != bi.Sign {
			return nil, newError(addPositiveToNegativeInfinityContinuation, "sum of opposite infinities is indeterminate", nil)
		}
		return a, nil
	case aIsInf:
		return a, nil
	case bIsInf:
		return b, nil
	default:
		return normalizeInt(new(bigInt).Add(toBig(a), toBig(b))), nil
	}
}

func numericNegate(a Value) Value {
	if inf, ok := a.(*Infinity); ok {
		if inf.Sign == PositiveInfinity {
			return NegInf
		}
		return PosInf
	}
	return normalizeInt(new(bigInt).Neg(toBig(a)))
}

// numericSubtract implements binary -.
func numericSubtract(a, b Value) (Value, *ErrorObject) {
	return numericAdd(a, numericNegate(b))
}

// numericMultiply implements *, raising for the indeterminate 0 * ∞.
func numericMultiply(a, b Value) (Value, *ErrorObject) {
	ai, aIsInf := a.(*Infinity)
	bi, bIsInf := b.(*Infinity)
	switch {
	case aIsInf && bIsInf:
		if ai.Sign == bi.Sign {
			return PosInf, nil
		}
		return NegInf, nil
	case aIsInf:
		return multiplyInfinityByFinite(ai, b)
	case bIsInf:
		return multiplyInfinityByFinite(bi, a)
	default:
		return normalizeInt(new(bigInt).Mul(toBig(a), toBig(b))), nil
	}
}

func multiplyInfinityByFinite(inf *Infinity, finite Value) (Value, *ErrorObject) {
	sign := toBig(finite).Sign()
	if sign == 0 {
		return nil, newError(multiplyInfinityByZeroContinuation, "product of zero and infinity is indeterminate", nil)
	}
	if sign < 0 {
		return numericNegate(inf), nil
	}
	return inf, nil
}

// numericDivide implements integer /, truncating toward zero; dividing
// by exact zero is an error, and so is any division with an infinite
// operand on either side.
func numericDivide(a, b Value) (Value, *ErrorObject) {
	_, aIsInf := a.(*Infinity)
	_, bIsInf := b.(*Infinity)
	switch {
	case aIsInf || bIsInf:
		return nil, newError(divideInfinityContinuation, "division involving infinity is indeterminate", nil)
	default:
		bb := toBig(b)
		if bb.Sign() == 0 {
			return nil, newError(divideByZeroContinuation, "division by zero", nil)
		}
		return normalizeInt(new(bigInt).Quo(toBig(a), bb)), nil
	}
}

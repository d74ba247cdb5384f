// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel_test

import (
	"testing"

	"code.hybscloud.com/kernel"
	"code.hybscloud.com/kernel/internal/driver"
)

// newTestDriver builds a standard driver rooted in the current
// directory, where kernel.k/extension.k live, and fails the test if
// any expression raises an uncaught error.
func newTestDriver(t *testing.T) *driver.Driver {
	t.Helper()
	var errs []*kernel.ErrorObject
	d, err := driver.NewStandard(func(eo *kernel.ErrorObject) { errs = append(errs, eo) })
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	t.Cleanup(func() {
		for _, eo := range errs {
			t.Errorf("uncaught error: %s", kernel.String(eo))
		}
	})
	return d
}

func evalString(t *testing.T, d *driver.Driver, src string) kernel.Value {
	t.Helper()
	v, err := d.EvalSource("<test>", src)
	if err != nil {
		t.Fatalf("EvalSource(%q): %v", src, err)
	}
	return v
}

func checkString(t *testing.T, d *driver.Driver, src, want string) {
	t.Helper()
	got := kernel.String(evalString(t, d, src))
	if got != want {
		t.Errorf("%s => %s, want %s", src, got, want)
	}
}

func TestWhenUnless(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `($when #t 1 2 3)`, "3")
	checkString(t, d, `($when #f 1 2 3)`, "#inert")
	checkString(t, d, `($unless #f 10)`, "10")
	checkString(t, d, `($unless #t 10)`, "#inert")
}

func TestLetStarSequentialScoping(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `($let* ((x 1) (y (+ x 1))) (+ x y))`, "3")
}

func TestLetrecMutualRecursion(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		($letrec ((even? ($lambda (n) ($if (=? n 0) #t (odd? (- n 1)))))
		          (odd?  ($lambda (n) ($if (=? n 0) #f (even? (- n 1))))))
		  (even? 10))`, "#t")
}

func TestForEachFilterFoldMap(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(filter ($lambda (x) (>? x 2)) (list 1 2 3 4))`, "(3 4)")
	checkString(t, d, `(fold-left + 0 (list 1 2 3 4))`, "10")
	checkString(t, d, `(fold-right cons () (list 1 2 3))`, "(1 2 3)")
	checkString(t, d, `(map ($lambda (x) (* x x)) (list 1 2 3))`, "(1 4 9)")
	checkString(t, d, `(for-each ($lambda (x) x) (list 1 2 3 4))`, "#inert")
}

func TestAssocAssqMaxMinAbs(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(cdr (assoc 2 (list (cons 1 "a") (cons 2 "b"))))`, `"b"`)
	checkString(t, d, `(assq 9 (list (cons 1 "a")))`, "#f")
	checkString(t, d, `(max 3 1 4 1 5 9 2 6)`, "9")
	checkString(t, d, `(min 3 1 4 1 5 9 2 6)`, "1")
	checkString(t, d, `(abs -5)`, "5")
	checkString(t, d, `(last (list 1 2 3))`, "3")
}

func TestCallCCEscapesFold(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		(call/cc ($lambda (k)
		  (fold-left ($lambda (acc x) ($if (>? x 3) (k acc) (+ acc x)))
		             0 (list 1 2 3 4 5 6))))`, "6")
}

func TestCallCCNormalReturn(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(+ 1 (call/cc ($lambda (k) 41)))`, "42")
}

// TestCallCCReentry captures the continuation of a `+` operand
// position, stores it, and re-invokes it later with a different value:
// the re-invocation re-runs the addition with the new operand rather
// than resuming past it.
func TestCallCCReentry(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		($define! c ())
		($define! v (+ 1 (call/cc ($lambda (k) ($set! c k) 10))))
		v`, "11")
	checkString(t, d, `
		(apply c (list 100))
		v`, "101")
}

// TestGuardContinuationBuildsExtentBoundary exercises the
// guard-continuation primitive surface itself: it must accept
// root-continuation as the continuation to guard and return a usable
// continuation, without raising. The full "catch an error and divert"
// flow needs a dynamic-extent-establishing derived form this minimal
// core deliberately doesn't define (see abnormal_test.go for coverage
// of the underlying interceptor mechanism at the Go level).
func TestGuardContinuationBuildsExtentBoundary(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		(continuation? (guard-continuation
		    ()
		    root-continuation
		    (list (list error-continuation ($lambda (e divert) (apply divert "caught"))))))`,
		"#t")
}

func TestTailCallIsBounded(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		($define! count-down
		  ($lambda (n acc)
		    ($if (=? n 0) acc (count-down (- n 1) (+ acc 1)))))
		(count-down 200000 0)`, "200000")
}

func TestEncapsulationIsolation(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		($define! box (make-encapsulation-type))
		($define! box-cons (car box))
		($define! box?     (cadr box))
		($define! box-ref  (caddr box))
		($define! other (make-encapsulation-type))
		($define! other-cons (car other))
		($define! other? (cadr other))
		(list (box? (box-cons 5)) (other? (box-cons 5)) (box-ref (box-cons 5)))`,
		"(#t #f 5)")
}

func TestPromiseForceIsMemoized(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `
		($define! n 0)
		($define! p ($lazy ($sequence ($define! n (+ n 1)) n)))
		(list (force p) (force p) n)`, "(1 1 1)")
}

func TestPromiseForceSplicesNestedPromise(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(force ($lazy ($lazy 5)))`, "5")
}

func TestArithmeticOverflowPromotesToBignum(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(* 10000000000 10000000000)`,
		"100000000000000000000")
}

func TestInfinityArithmeticIndeterminate(t *testing.T) {
	var errs []*kernel.ErrorObject
	dd, err := driver.NewStandard(func(eo *kernel.ErrorObject) { errs = append(errs, eo) })
	if err != nil {
		t.Fatalf("NewStandard: %v", err)
	}
	evalString(t, dd, `(- #e+infinity #e+infinity)`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one indeterminate-result error, got %d", len(errs))
	}
}

func TestReaderRadixLiterals(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `#x1F`, "31")
	checkString(t, d, `#b101`, "5")
	checkString(t, d, `#o17`, "15")
	checkString(t, d, `#e#x10`, "16")
}

func TestReaderDatumComment(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `(list 1 #;2 3)`, "(1 3)")
}

func TestReaderCaseInsensitiveLiterals(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `#T`, "#t")
	checkString(t, d, `#Inert`, "#inert")
}

func TestReaderDowncasesSymbols(t *testing.T) {
	d := newTestDriver(t)
	checkString(t, d, `($define! FooBar 1) foobar`, "1")
}

func TestExtendedEnvironmentIota(t *testing.T) {
	var errs []*kernel.ErrorObject
	d, err := driver.NewExtended(func(eo *kernel.ErrorObject) { errs = append(errs, eo) })
	if err != nil {
		t.Fatalf("NewExtended: %v", err)
	}
	t.Cleanup(func() {
		for _, eo := range errs {
			t.Errorf("uncaught error: %s", kernel.String(eo))
		}
	})
	checkString(t, d, `(iota 5)`, "(0 1 2 3 4)")
	checkString(t, d, `(iota 3 10)`, "(10 11 12)")
	checkString(t, d, `(begin 1 2 3)`, "3")
}

func TestProvideExports(t *testing.T) {
	d, err := driver.NewExtended(func(eo *kernel.ErrorObject) { t.Errorf("uncaught error: %s", kernel.String(eo)) })
	if err != nil {
		t.Fatalf("NewExtended: %v", err)
	}
	checkString(t, d, `($provide! answer 42)`, "(answer . 42)")
	checkString(t, d, `answer`, "42")
}

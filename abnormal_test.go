// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

import "testing"

// chainOf collects c and every Prev ancestor, for asserting that every
// frame abnormallyPass could have touched is left with its marked bit
// clear on return.
func chainOf(c Cont) []Cont {
	var out []Cont
	for ; c != nil; c = c.Prev() {
		out = append(out, c)
	}
	return out
}

func assertAllUnmarked(t *testing.T, conts ...Cont) {
	t.Helper()
	seen := map[Cont]bool{}
	for _, c := range conts {
		for _, f := range chainOf(c) {
			if seen[f] {
				continue
			}
			seen[f] = true
			if f.Marked() {
				t.Errorf("frame %#v left marked after abnormallyPass", f)
			}
		}
	}
}

// TestAbnormallyPassClearsMarks drives a plain pass (no guards) between
// two branches of a continuation tree sharing a root, and checks every
// frame on both chains ends unmarked.
func TestAbnormallyPassClearsMarks(t *testing.T) {
	root := &RootCont{}
	branchA := &ConstantCont{frameBase: base(root), Fixed: Inert}
	branchA2 := &ConstantCont{frameBase: base(branchA), Fixed: Inert}
	branchB := &ConstantCont{frameBase: base(root), Fixed: Inert}
	branchB2 := &ConstantCont{frameBase: base(branchB), Fixed: Inert}

	step := abnormallyPass(Inert, branchA2, branchB2)
	if step.Kind != StepTerminate {
		t.Fatalf("expected StepTerminate from a plug chain reaching root, got %#v", step)
	}
	assertAllUnmarked(t, branchA2, branchB2, root)
}

// TestAbnormallyPassSameSrcDst covers the degenerate case where a
// continuation is invoked against itself (no exited/entered frames at
// all), which exercises the early-common-ancestor path.
func TestAbnormallyPassSameSrcDst(t *testing.T) {
	root := &RootCont{}
	leaf := &ConstantCont{frameBase: base(root), Fixed: Inert}
	abnormallyPass(Inert, leaf, leaf)
	assertAllUnmarked(t, leaf, root)
}

// TestAbnormallyPassExitGuardIntercepts builds an InnerGuardCont
// between a nested src and an outer dst, with a clause selecting dst
// itself, and checks the interceptor fires instead of val reaching dst
// directly.
func TestAbnormallyPassExitGuardIntercepts(t *testing.T) {
	root := &RootCont{}
	guard := &InnerGuardCont{frameBase: base(root)}
	nested := &ConstantCont{frameBase: base(guard), Fixed: Inert}

	var gotVal Value
	var gotOuter Value
	interceptor := &PrimitiveOperative{Name: "test-interceptor", Fn: func(operands Value, env *Environment, cont Cont) Step {
		vs, ok := listToSlice(operands)
		if !ok || len(*vs) != 2 {
			t.Fatalf("interceptor expected exactly 2 operands, got %v", operands)
		}
		gotVal = (*vs)[0]
		gotOuter = (*vs)[1]
		releaseScratch(vs)
		return cont.PlugReduce(Inert)
	}}
	guard.Clauses = []GuardClause{{Selector: root, Interceptor: Wrap(interceptor)}}

	step := abnormallyPass(&Fixnum{Value: 7}, nested, root)
	if step.Kind != StepTerminate {
		t.Fatalf("expected the interceptor's own plug to reach root and terminate, got %#v", step)
	}
	if gotVal == nil {
		t.Fatal("exit-guard interceptor never ran")
	}
	if fn, ok := gotVal.(*Fixnum); !ok || fn.Value != 7 {
		t.Errorf("interceptor received %v, want Fixnum(7)", gotVal)
	}
	if _, ok := gotOuter.(*Applicative); !ok {
		t.Errorf("interceptor's second argument should be an Applicative wrapping the outer continuation, got %T", gotOuter)
	}
	assertAllUnmarked(t, nested, root)
}

// TestAbnormallyPassFirstClausePerFrameWins builds a single guard frame
// with two clauses that both match dst: an earlier one selecting an
// ancestor of dst, and a later one selecting dst itself. Only the
// earlier clause's interceptor should run — a guard frame never fires
// more than one of its own clauses for the same pass.
func TestAbnormallyPassFirstClausePerFrameWins(t *testing.T) {
	root := &RootCont{}
	dst := &ConstantCont{frameBase: base(root), Fixed: Inert}
	guard := &InnerGuardCont{frameBase: base(root)}
	nested := &ConstantCont{frameBase: base(guard), Fixed: Inert}

	var firstRan, secondRan bool
	first := &PrimitiveOperative{Name: "first", Fn: func(operands Value, env *Environment, cont Cont) Step {
		firstRan = true
		return cont.PlugReduce(Inert)
	}}
	second := &PrimitiveOperative{Name: "second", Fn: func(operands Value, env *Environment, cont Cont) Step {
		secondRan = true
		return cont.PlugReduce(Inert)
	}}
	guard.Clauses = []GuardClause{
		{Selector: root, Interceptor: Wrap(first)},
		{Selector: dst, Interceptor: Wrap(second)},
	}

	step := abnormallyPass(&Fixnum{Value: 3}, nested, dst)
	if step.Kind != StepTerminate {
		t.Fatalf("expected StepTerminate, got %#v", step)
	}
	if !firstRan {
		t.Error("first matching clause's interceptor never ran")
	}
	if secondRan {
		t.Error("second clause in the same guard frame fired alongside the first match")
	}
	assertAllUnmarked(t, nested, dst, root)
}

// TestAbnormallyPassNoGuardPlugsDirectly checks that with no matching
// clause the value reaches dst's PlugReduce: here dst is root itself,
// so the pass terminates the trampoline with that value.
func TestAbnormallyPassNoGuardPlugsDirectly(t *testing.T) {
	root := &RootCont{}
	nested := &ConstantCont{frameBase: base(root), Fixed: Inert}
	step := abnormallyPass(&Fixnum{Value: 9}, nested, root)
	if step.Kind != StepTerminate {
		t.Fatalf("expected StepTerminate, got %#v", step)
	}
	fn, ok := step.Result.(*Fixnum)
	if !ok || fn.Value != 9 {
		t.Errorf("Result = %v, want Fixnum(9)", step.Result)
	}
}

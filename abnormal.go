// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// interceptEnv is the dynamic environment an interceptor's env-formal
// binds to when guard-continuation invokes it. Interceptors are called
// outside the expression that raised or invoked the continuation, so
// there is no natural caller environment to thread through; every
// interceptor gets this one empty environment instead.
var interceptEnv = NewEnvironment(nil)

// abnormallyPass transfers val from src to dst, the general mechanism
// behind both ordinary continuation invocation and error signalling.
// It uses each frame's transient Marked bit (rather than an auxiliary
// set) to find the common ancestor and partition the two chains:
//  1. mark the destination chain, dst up to the root;
//  2. walk from src upward, collecting exit interceptors (InnerGuardCont
//     clauses) from unmarked frames, stopping at the first marked frame
//     — the common ancestor of src and dst;
//  3. unmark the whole destination chain, then mark the whole source
//     chain up to the root; walk from dst upward collecting entry
//     interceptors (OuterGuardCont clauses) from unmarked frames,
//     stopping at the first marked frame (the common ancestor); unmark
//     the source chain afterward. Every frame touched ends this call unmarked,
//     satisfying the "marked bit clear on return" invariant.
//  4. a clause's selector matches this pass when the selector is dst or
//     an ancestor of dst — i.e. the clause guards against passes landing
//     on dst's extent or anything nested inside it; within one guard
//     frame, only its first matching clause is taken, so later clauses
//     in that frame never fire alongside an earlier match;
//  5. matching interceptors (at most one per guard frame) are chained,
//     innermost queued first, each one receiving the transferred value
//     and an applicative that, if invoked, resumes the rest of the
//     pipeline and finally reaches dst;
//  6. with no matching clauses, val is simply plugged into dst.
func abnormallyPass(val Value, src, dst Cont) Step {
	for c := dst; c != nil; c = c.Prev() {
		c.SetMarked(true)
	}

	var exited []Cont // src, src.Prev(), ... up to but excluding common
	for c := src; c != nil; c = c.Prev() {
		if c.Marked() {
			break
		}
		exited = append(exited, c)
	}

	for c := dst; c != nil; c = c.Prev() {
		c.SetMarked(false)
	}
	for c := src; c != nil; c = c.Prev() {
		c.SetMarked(true)
	}

	var enteredRev []Cont // dst, dst.Prev(), ... up to but excluding common
	for c := dst; c != nil; c = c.Prev() {
		if c.Marked() {
			break
		}
		enteredRev = append(enteredRev, c)
	}

	for c := src; c != nil; c = c.Prev() {
		c.SetMarked(false)
	}

	// entered is ordered outermost-first (common-ancestor side toward
	// dst), the reverse of the dst-outward walk above.
	entered := make([]Cont, len(enteredRev))
	for i, c := range enteredRev {
		entered[len(enteredRev)-1-i] = c
	}

	// Within a single guard frame, only the first clause whose selector
	// matches fires — later clauses in the same frame are shadowed,
	// exactly like a cond with more than one applicable test.
	var matched []GuardClause
	for _, f := range exited {
		if g, ok := f.(*InnerGuardCont); ok {
			if c, ok := firstMatchingClause(g.Clauses, dst); ok {
				matched = append(matched, c)
			}
		}
	}
	for _, f := range entered {
		if g, ok := f.(*OuterGuardCont); ok {
			if c, ok := firstMatchingClause(g.Clauses, dst); ok {
				matched = append(matched, c)
			}
		}
	}
	if len(matched) == 0 {
		return dst.PlugReduce(val)
	}

	// Chain the matched interceptors innermost-last: each frame's prev
	// and Outer both point at the next stage, so either a normal return
	// from the interceptor or an explicit invocation of its outer
	// argument resumes the same remaining pipeline.
	cont := dst
	for i := len(matched) - 1; i >= 0; i-- {
		next := cont
		cont = &InterceptCont{
			frameBase:   base(next),
			Interceptor: matched[i].Interceptor,
			Outer:       next,
			OuterEnv:    interceptEnv,
		}
	}
	return cont.PlugReduce(val)
}

// firstMatchingClause returns the first clause in clauses (in order)
// whose selector is dst or an ancestor of dst.
func firstMatchingClause(clauses []GuardClause, dst Cont) (GuardClause, bool) {
	for _, c := range clauses {
		if isAncestorOrSelf(c.Selector, dst) {
			return c, true
		}
	}
	return GuardClause{}, false
}

// isAncestorOrSelf reports whether anc appears on c's Prev chain,
// including c itself.
func isAncestorOrSelf(anc, c Cont) bool {
	for x := c; x != nil; x = x.Prev() {
		if x == anc {
			return true
		}
	}
	return false
}

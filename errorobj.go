// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kernel

// ErrorObject is the payload Kernel error handling plugs into whichever
// continuation an abnormal pass lands on. Dest names which standard
// continuation the trampoline must abnormally pass this value to. The
// raising site's continuation travels beside it as the Step's Src (see
// RaiseStep) and is the source of that pass; the ErrorObject itself
// records no source continuation, expression or environment.
type ErrorObject struct {
	Message   string
	Irritants Value // proper list, possibly Null
	Dest      Cont
}

func (*ErrorObject) value() {}

// newError builds an ErrorObject destined for dest, wrapping a single
// irritant (or none, if irritant is nil) in a proper list.
func newError(dest Cont, msg string, irritant Value) *ErrorObject {
	irritants := Value(Null)
	if irritant != nil {
		irritants = Cons(irritant, Null)
	}
	return &ErrorObject{Message: msg, Irritants: irritants, Dest: dest}
}

// NamedCont is a plain forwarding frame used for the standard error
// continuation hierarchy (error-continuation and its children): on an
// ordinary plug it forwards val to prev unchanged, exactly like the
// guard marker frames. Its only role beyond that is identity — it is
// what guard-continuation selectors compare against, and what
// abnormallyPass threads through when walking from a raise site up to
// the continuation that should actually handle it.
type NamedCont struct {
	frameBase
	Name string
}

func (f *NamedCont) PlugReduce(val Value) Step { return f.prev.PlugReduce(val) }

func namedCont(name string) *NamedCont { return &NamedCont{Name: name} }

// The standard continuation hierarchy. These are created once as
// detached frames (Prev is nil) and spliced beneath the actual root
// continuation by InstallStandardContinuations when a ground
// environment is built; ordinary Kernel programs reach them only by
// name (as applicatives wrapping ContinuationWrapper, bound in the
// ground environment by ground.go).
var (
	errorContinuation       = namedCont("error-continuation")
	systemErrorContinuation = namedCont("system-error-continuation")
	userErrorContinuation   = namedCont("user-error-continuation")

	fileNotFoundContinuation             = namedCont("file-not-found-continuation")
	parseErrorContinuation               = namedCont("parse-error-continuation")
	typeErrorContinuation                = namedCont("type-error-continuation")
	valueErrorContinuation                = namedCont("value-error-continuation")
	encapsulationTypeErrorContinuation    = namedCont("encapsulation-type-error-continuation")
	operandMismatchContinuation           = namedCont("operand-mismatch-continuation")
	arityMismatchContinuation             = namedCont("arity-mismatch-continuation")
	combineWithNonListOperandsContinuation = namedCont("combine-with-non-list-operands-continuation")
	symbolNotFoundContinuation            = namedCont("symbol-not-found-continuation")
	unboundDynamicKeyContinuation         = namedCont("unbound-dynamic-key-continuation")
	unboundStaticKeyContinuation          = namedCont("unbound-static-key-continuation")

	divideByZeroContinuation                  = namedCont("divide-by-zero-continuation")
	addPositiveToNegativeInfinityContinuation = namedCont("add-positive-to-negative-infinity-continuation")
	multiplyInfinityByZeroContinuation        = namedCont("multiply-infinity-by-zero-continuation")
	divideInfinityContinuation                = namedCont("divide-infinity-continuation")
)

// standardContinuationChain lists every named continuation in its
// parent/child shape, outermost first, so InstallStandardContinuations
// can splice each one's Prev in a single pass.
var standardContinuationChain = []struct {
	cont   *NamedCont
	parent *NamedCont // nil means "root"
}{
	{errorContinuation, nil},
	{systemErrorContinuation, errorContinuation},
	{userErrorContinuation, errorContinuation},
	{fileNotFoundContinuation, systemErrorContinuation},
	{parseErrorContinuation, systemErrorContinuation},
	{symbolNotFoundContinuation, systemErrorContinuation},
	{unboundDynamicKeyContinuation, systemErrorContinuation},
	{unboundStaticKeyContinuation, systemErrorContinuation},
	{typeErrorContinuation, userErrorContinuation},
	{valueErrorContinuation, userErrorContinuation},
	{encapsulationTypeErrorContinuation, userErrorContinuation},
	{operandMismatchContinuation, userErrorContinuation},
	{arityMismatchContinuation, userErrorContinuation},
	{combineWithNonListOperandsContinuation, userErrorContinuation},
	{divideByZeroContinuation, userErrorContinuation},
	{addPositiveToNegativeInfinityContinuation, userErrorContinuation},
	{multiplyInfinityByZeroContinuation, userErrorContinuation},
	{divideInfinityContinuation, userErrorContinuation},
}

// InstallStandardContinuations splices the standard error continuation
// hierarchy beneath root, so that an unhandled error of any named kind
// eventually reaches root's own PlugReduce. Called once per ground
// environment construction (see ground.go); safe to call more than
// once; each call rewrites every Prev link.
func InstallStandardContinuations(root Cont) {
	for _, e := range standardContinuationChain {
		if e.parent == nil {
			e.cont.prev = root
			continue
		}
		e.cont.prev = e.parent
	}
}

// namedContinuations maps the ground environment's externally visible
// continuation names to their frames, for ground.go to bind as
// applicatives wrapping ContinuationWrapper values.
var namedContinuations = map[string]*NamedCont{
	"error-continuation":                             errorContinuation,
	"system-error-continuation":                      systemErrorContinuation,
	"user-error-continuation":                        userErrorContinuation,
	"file-not-found-continuation":                    fileNotFoundContinuation,
	"parse-error-continuation":                       parseErrorContinuation,
	"type-error-continuation":                        typeErrorContinuation,
	"value-error-continuation":                       valueErrorContinuation,
	"encapsulation-type-error-continuation":           encapsulationTypeErrorContinuation,
	"operand-mismatch-continuation":                   operandMismatchContinuation,
	"arity-mismatch-continuation":                     arityMismatchContinuation,
	"combine-with-non-list-operands-continuation":     combineWithNonListOperandsContinuation,
	"symbol-not-found-continuation":                   symbolNotFoundContinuation,
	"unbound-dynamic-key-continuation":                unboundDynamicKeyContinuation,
	"unbound-static-key-continuation":                 unboundStaticKeyContinuation,
	"divide-by-zero-continuation":                     divideByZeroContinuation,
	"add-positive-to-negative-infinity-continuation":  addPositiveToNegativeInfinityContinuation,
	"multiply-infinity-by-zero-continuation":           multiplyInfinityByZeroContinuation,
	"divide-infinity-continuation":                    divideInfinityContinuation,
}

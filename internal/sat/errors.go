package sat

import "math"

// ContractError reports a violation of the API's call-order contract (spec
// §7.1): calling deref before a solve has produced a verdict, requesting a
// trace/core without tracing enabled, or passing the reserved INT_MIN
// literal to Add. These are programmer errors, not recoverable search
// outcomes, so they panic rather than returning an error value; cmd/picosolve
// recovers at the top level and reports the diagnostic.
type ContractError struct {
	Op string
	Msg string
}

func (e *ContractError) Error() string { return e.Op + ": " + e.Msg }

func contractViolation(op, msg string) {
	panic(&ContractError{Op: op, Msg: msg})
}

// rejectIntMin guards Add against the one reserved literal value the API
// documents as fatal, the way picosat_add aborts on INT_MIN: there is no
// corresponding positive value to negate it into a variable index.
func rejectIntMin(lit int) {
	if lit == math.MinInt {
		contractViolation("Add", "INT_MIN is not a valid literal")
	}
}

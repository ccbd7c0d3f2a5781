package sat

// Reason is the tagged-pointer reason encoding from spec §6: a single
// word-sized value recording why a literal was forced onto the trail. The
// low bit distinguishes a "literal reason" (binary-clause fast path, which
// never materializes a Clause) from a clause-backed reason; the remaining
// bits hold either the TRUE literal that forced the assignment through a
// binary clause (the negation of that clause's other literal) or a ClauseID.
// ClauseID 0 is never issued by the clause store, so the zero value of
// Reason doubles as "no reason" (a decision or a level-0 assumption).
type Reason int32

// noReason marks a decision literal or a level-0 fact with no antecedent.
const noReason Reason = 0

// binaryReason packs, as a reason, the literal whose truth forced the
// assignment through a binary clause: the negation of the clause's other
// literal.
func binaryReason(other Lit) Reason {
	return Reason(other)<<1 | 1
}

// clauseReason packs a large-clause antecedent as a reason.
func clauseReason(id ClauseID) Reason {
	return Reason(id) << 1
}

func (r Reason) isNone() bool { return r == noReason }

func (r Reason) isBinary() bool { return r&1 == 1 }

// literal returns the literal packed by binaryReason (the negation of the
// binary clause's other literal); only valid when isBinary is true.
func (r Reason) literal() Lit { return Lit(r >> 1) }

// clauseID returns the backing clause of a large-clause reason; only valid
// when isBinary is false and isNone is false.
func (r Reason) clauseID() ClauseID { return ClauseID(r >> 1) }

package sat

import (
	"math/bits"
	"sync"
)

// Number of literal slice pools in the sync.Pool ladder used to recycle
// clause literal backing arrays; also feeds the byte accounting that
// drives the reduce trigger (current_bytes >= a configurable ceiling).
const nLitPools = 4

const lastPoolCapacity = 1 << nLitPools

var litPools = [nLitPools]sync.Pool{}

func init() {
	for i := 0; i < nLitPools; i++ {
		capa := 1 << (i + 1)
		litPools[i].New = func() any {
			s := make([]Lit, 0, capa)
			return &s
		}
	}
}

func litPoolID(capa int) int {
	if capa >= lastPoolCapacity {
		return nLitPools - 1
	}
	id := bits.Len(uint(capa)) - 1
	if capa < (1 << id) {
		id--
	}
	return id
}

// allocLits returns a zero-length slice with at least capa of capacity,
// reusing a pooled backing array when one of the right size is available.
func allocLits(capa int) *[]Lit {
	ref := litPools[litPoolID(capa)].Get().(*[]Lit)
	if cap(*ref) < capa {
		s := make([]Lit, 0, capa)
		ref = &s
	}
	return ref
}

// freeLits returns the backing array to its pool for reuse.
func freeLits(s *[]Lit) {
	*s = (*s)[:0]
	litPools[litPoolID(cap(*s))].Put(s)
}

// arena is the memory accounting component (spec §4.B): every clause
// allocation and free is reported here so that current/peak byte usage can
// be queried by MaxBytesAllocated and compared against the reduce trigger's
// byte ceiling. PicoSAT treats allocation failure as fatal; Go's allocator
// already panics (and the runtime OOM-kills) on true exhaustion, so there is
// nothing further for this type to enforce beyond bookkeeping.
type arena struct {
	current int64
	peak int64
}

const bytesPerLit = int64(4) // Lit is an int32

func clauseBytes(nLits int) int64 {
	// Matches the packed-record shape of spec §3 "Large clause": a small
	// fixed header (size, flags, activity word) plus one word per literal.
	return 24 + int64(nLits)*bytesPerLit
}

func (a *arena) account(delta int64) {
	a.current += delta
	if a.current > a.peak {
		a.peak = a.current
	}
}

func (a *arena) currentBytes() int64 { return a.current }

func (a *arena) maxBytes() int64 { return a.peak }

func (a *arena) reset() {
	a.current = 0
	a.peak = 0
}

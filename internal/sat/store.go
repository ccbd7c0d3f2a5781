package sat

// ClauseID identifies a clause of size >= 3 inside the clause store. Binary
// clauses never get a ClauseID: they live only as symmetric entries in the
// per-literal implication lists (see addImpl). The zero ClauseID is never
// issued by newRecord, so it doubles as a "no clause" sentinel — this is
// what lets Reason's zero value mean "no reason" (reason.go).
type ClauseID int32

// clauseFlags mirrors the bit flags of spec §3 "Large clause".
type clauseFlags uint16

const (
	clauseLearned clauseFlags = 1 << iota
	clauseConnected
	clauseCollect
	clauseCollected
	clauseUsed
	clauseCore
	clauseLocked
	clauseFixed
)

func (f clauseFlags) has(bit clauseFlags) bool { return f&bit != 0 }

// clauseRecord is the packed clause record of spec §3: {size, flags, literal
// array}, with an activity word (meaningful only for learned clauses of size
// > 2) and, when tracing is enabled, a monotone trace id.
type clauseRecord struct {
	lits []Lit
	litsRef *[]Lit // pooled backing array, returned to the pool on free
	activity Flt
	flags clauseFlags
	traceID int32
}

func (c *clauseRecord) isLearned() bool { return c.flags.has(clauseLearned) }
func (c *clauseRecord) isCollected() bool { return c.flags.has(clauseCollected) }

// watcher is a clause attached to one literal's watch list, carrying a guard
// literal: if the guard is already True, the clause can't be unit or
// conflicting and BCP skips loading it entirely.
type watcher struct {
	id ClauseID
	guard Lit
}

// implEntry is one side of a binary clause's symmetric implication-list
// entry, carrying the trace id assigned to that clause (0 when tracing is
// disabled or the clause predates tracing being enabled) so conflict
// analysis can resolve a binary reason straight back to its antecedent
// without a separate side table.
type implEntry struct {
	other Lit
	id int32
}

// clauseDB is the clause database (spec §4.D component): the arena of
// size->=3 clauses plus the per-literal watch and binary-implication lists.
// Realized as an arena + id scheme per the design notes, rather than
// an intrusive-pointer *Clause design, so that watch "chains" are plain
// per-literal slices of watchers (a ClauseID plus a guard literal) instead
// of intrusive linked lists threaded
// through clause structs.
type clauseDB struct {
	records []clauseRecord // records[0] is an unused sentinel
	free []ClauseID // recycled slots freed by GC
	watchers [][]watcher // indexed by Lit
	impls [][]implEntry // indexed by Lit; impls[a] holds (b, traceID) for every binary clause (a,b)
}

func newClauseDB() *clauseDB {
	return &clauseDB{records: make([]clauseRecord, 1)}
}

// growVars extends the literal-indexed tables for nNewVars freshly created
// variables (spec §4.C: tables grow geometrically and all derived pointers
// are rebased; with an id-based design there is nothing to rebase).
func (db *clauseDB) growVars(nNewVars int) {
	for i := 0; i < nNewVars*2; i++ {
		db.watchers = append(db.watchers, nil)
		db.impls = append(db.impls, nil)
	}
}

func (db *clauseDB) at(id ClauseID) *clauseRecord { return &db.records[id] }

func (db *clauseDB) newRecord(lits []Lit, learned bool, mem *arena) ClauseID {
	ref := allocLits(len(lits))
	*ref = append((*ref)[:0], lits...)

	rec := clauseRecord{lits: *ref, litsRef: ref}
	if learned {
		rec.flags |= clauseLearned
	}

	var id ClauseID
	if n := len(db.free); n > 0 {
		id = db.free[n-1]
		db.free = db.free[:n-1]
		db.records[id] = rec
	} else {
		db.records = append(db.records, rec)
		id = ClauseID(len(db.records) - 1)
	}

	mem.account(clauseBytes(len(lits)))
	return id
}

func (db *clauseDB) freeRecord(id ClauseID, mem *arena) {
	rec := &db.records[id]
	mem.account(-clauseBytes(len(rec.lits)))
	if rec.litsRef != nil {
		freeLits(rec.litsRef)
	}
	*rec = clauseRecord{flags: clauseCollected}
	db.free = append(db.free, id)
}

func (db *clauseDB) watch(id ClauseID, on, guard Lit) {
	db.watchers[on] = append(db.watchers[on], watcher{id: id, guard: guard})
}

// unwatch removes the (possibly only) watcher entry for clause id from
// literal on's watch list.
func (db *clauseDB) unwatch(id ClauseID, on Lit) {
	ws := db.watchers[on]
	for i := range ws {
		if ws[i].id == id {
			ws[i] = ws[len(ws)-1]
			db.watchers[on] = ws[:len(ws)-1]
			return
		}
	}
}

// addImpl records the binary clause (a OR b) symmetrically (invariant 5).
func (db *clauseDB) addImpl(a, b Lit, traceID int32) {
	db.impls[a] = append(db.impls[a], implEntry{other: b, id: traceID})
	db.impls[b] = append(db.impls[b], implEntry{other: a, id: traceID})
}

// removeImpl deletes one occurrence of b from impls[a]; used when a top
// level fact makes a binary implication permanently irrelevant.
func (db *clauseDB) removeImpl(a, b Lit) {
	es := db.impls[a]
	for i, e := range es {
		if e.other == b {
			es[i] = es[len(es)-1]
			db.impls[a] = es[:len(es)-1]
			return
		}
	}
}

// implTraceID returns the trace id of the binary clause (a OR b), or 0 if
// tracing wasn't enabled when it was added.
func (db *clauseDB) implTraceID(a, b Lit) int32 {
	for _, e := range db.impls[a] {
		if e.other == b {
			return e.id
		}
	}
	return 0
}

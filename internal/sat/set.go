package sat

// resetSet represents a set of variables from 0 to N-1 that can be cleared
// in constant time. Used for the "seen" / mark bits conflict analysis
// (spec §4.H) touches on every variable it visits.
type resetSet struct {
	addedAt []uint16
	addedTimestamp uint16
}

// Contains returns true if v is in the set.
func (rs *resetSet) Contains(v int) bool {
	return rs.addedAt[v] == rs.addedTimestamp
}

// Add adds v to the set.
func (rs *resetSet) Add(v int) {
	rs.addedAt[v] = rs.addedTimestamp
}

// Remove takes v back out of the set without touching anything else. The
// self-subsuming minimization pass (spec §4.H.3) needs this: when a
// variable's reason closure fails to prove it redundant, every variable
// marked during that one closure must be unmarked again so it doesn't
// poison later minimization attempts, while variables marked by the main
// 1-UIP walk stay marked.
func (rs *resetSet) Remove(v int) {
	rs.addedAt[v] = rs.addedTimestamp - 1
}

// Clear removes all the elements in the set in constant time.
func (rs *resetSet) Clear() {
	rs.addedTimestamp++
	if rs.addedTimestamp == 0 { // overflow
		rs.addedTimestamp = 1
		for i := range rs.addedAt {
			rs.addedAt[i] = 0
		}
	}
}

// Expand increases the capacity of the set.
func (rs *resetSet) Expand() {
	rs.addedAt = append(rs.addedAt, 0)
}

package analyzer

import "sort"

// TopN keeps the largest records seen, ordered by size descending.
// Among records of equal size the one offered first ranks first; callers
// should not depend on that order.
type TopN struct {
	capacity int
	records  []*FileRecord
}

// NewTopN returns a tracker holding at most capacity records.
func NewTopN(capacity int) *TopN {
	if capacity < 0 {
		capacity = 0
	}
	return &TopN{capacity: capacity, records: make([]*FileRecord, 0, capacity+1)}
}

// Offer inserts rec if it belongs among the largest records, evicting the
// smallest when over capacity.
func (t *TopN) Offer(rec *FileRecord) {
	if rec == nil || t.capacity == 0 {
		return
	}
	n := len(t.records)
	if n == t.capacity && rec.Size <= t.records[n-1].Size {
		return
	}

	// First position holding a strictly smaller record
	i := sort.Search(n, func(i int) bool {
		return t.records[i].Size < rec.Size
	})
	t.records = append(t.records, nil)
	copy(t.records[i+1:], t.records[i:])
	t.records[i] = rec

	if len(t.records) > t.capacity {
		t.records[len(t.records)-1] = nil
		t.records = t.records[:t.capacity]
	}
}

// Len returns the number of records held.
func (t *TopN) Len() int {
	return len(t.records)
}

// Cap returns the tracker capacity.
func (t *TopN) Cap() int {
	return t.capacity
}

// Records returns the held records, largest first.
func (t *TopN) Records() []*FileRecord {
	out := make([]*FileRecord, len(t.records))
	copy(out, t.records)
	return out
}

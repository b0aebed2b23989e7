package stock101

// Snapshot is a saved copy of the undoable part of a game.
type Snapshot struct {
	Board *Board
	Heap  int
	Goal  int
	Score int
}

// History is a bounded undo stack. Pushing onto a full history evicts the
// oldest entry.
type History struct {
	entries  []Snapshot
	capacity int
}

// NewHistory creates an empty history holding at most capacity snapshots.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		entries:  make([]Snapshot, 0, capacity),
		capacity: capacity,
	}
}

// Push appends s, dropping the oldest snapshot when full.
func (h *History) Push(s Snapshot) {
	if len(h.entries) >= h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, s)
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Capacity returns the maximum number of snapshots kept.
func (h *History) Capacity() int {
	return h.capacity
}

// Entries returns the stored snapshots, oldest first.
func (h *History) Entries() []Snapshot {
	return append([]Snapshot(nil), h.entries...)
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.entries = h.entries[:0]
}

package idgen

// Sequence names an independent identifier stream.
type Sequence string

const (
	Events  Sequence = "events"
	Tickets Sequence = "tickets"
)

// Allocator hands out strictly increasing identifiers starting at 1, one
// counter per sequence. It does no locking of its own; callers serialize
// access through the store that owns it.
type Allocator struct {
	next map[Sequence]uint64
}

func New() *Allocator {
	return &Allocator{next: make(map[Sequence]uint64)}
}

// Next returns the current value of seq and advances it.
func (a *Allocator) Next(seq Sequence) uint64 {
	id, ok := a.next[seq]
	if !ok {
		id = 1
	}
	a.next[seq] = id + 1
	return id
}

// Peek returns the value Next would return without advancing.
func (a *Allocator) Peek(seq Sequence) uint64 {
	if id, ok := a.next[seq]; ok {
		return id
	}
	return 1
}

// Reset rewinds seq so the next allocation returns next. Stores use it to
// give back an id allocated inside an aborted transaction.
func (a *Allocator) Reset(seq Sequence, next uint64) {
	if next < 1 {
		next = 1
	}
	a.next[seq] = next
}

// Package turnqueue orders the combatants of one side for a round
package turnqueue

import (
	"container/heap"
)

// Entry is a combatant as the queue sees it
type Entry interface {
	IsAlive() bool
	Power() int
}

// ActedFunc reports whether an entry already acted this round
type ActedFunc func(Entry) bool

// item wraps an entry with its ordering keys
type item struct {
	entry Entry
	power int
	seq   int
	index int
}

// itemHeap implements heap.Interface: highest power first, then input order
type itemHeap []*item

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	if h[i].power != h[j].power {
		return h[i].power > h[j].power
	}
	return h[i].seq < h[j].seq
}

func (h itemHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *itemHeap) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// Queue is the acting order of one side for the current round. Power is read
// once at build time.
type Queue struct {
	items itemHeap
}

// Build queues the living, not-yet-acted entries. Nil entries are skipped;
// a nil acted func means nobody has acted.
func Build(entries []Entry, acted ActedFunc) *Queue {
	q := &Queue{items: make(itemHeap, 0, len(entries))}
	for i, e := range entries {
		if !eligible(e, acted) {
			continue
		}
		q.items = append(q.items, &item{entry: e, power: e.Power(), seq: i, index: len(q.items)})
	}
	heap.Init(&q.items)
	return q
}

// Pop removes and returns the highest-power entry that is still alive and has
// not acted. Stale entries are discarded on the way. Returns nil when empty.
func (q *Queue) Pop(acted ActedFunc) Entry {
	for q.items.Len() > 0 {
		it := heap.Pop(&q.items).(*item)
		if eligible(it.entry, acted) {
			return it.entry
		}
	}
	return nil
}

// Peek returns the next eligible entry without removing it
func (q *Queue) Peek(acted ActedFunc) Entry {
	for q.items.Len() > 0 {
		top := q.items[0]
		if eligible(top.entry, acted) {
			return top.entry
		}
		heap.Pop(&q.items)
	}
	return nil
}

// Len is the number of queued entries, stale ones included
func (q *Queue) Len() int {
	return q.items.Len()
}

// Snapshot returns the queued entries in acting order without consuming them
func (q *Queue) Snapshot() []Entry {
	cp := make(itemHeap, len(q.items))
	for i, it := range q.items {
		c := *it
		cp[i] = &c
	}

	out := make([]Entry, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(*item).entry)
	}
	return out
}

func eligible(e Entry, acted ActedFunc) bool {
	if e == nil || !e.IsAlive() {
		return false
	}
	return acted == nil || !acted(e)
}

// Package queue contains FIFO queue used by breadth-first graph walks.
package queue

const minSize = 3

// Queue is a ring buffer, its capacity is always a power of 2.
type Queue[T any] struct {
	items      []T
	mask       int
	head, tail int
	zero       T
}

func New[T any](items ...T) *Queue[T] {
	q := &Queue[T]{}
	q.mask = computeSize(len(items))
	q.items = make([]T, q.mask+1)
	q.tail = copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == q.tail
}

func (q *Queue[T]) Len() int {
	return (q.tail - q.head) & q.mask
}

// Append adds an item to the end of the queue.
func (q *Queue[T]) Append(items ...T) *Queue[T] {
	for _, item := range items {
		q.items[q.tail] = item
		q.tail = (q.tail + 1) & q.mask
		if q.tail == q.head {
			q.grow()
		}
	}
	return q
}

// First removes and returns the first item, false if the queue is empty.
func (q *Queue[T]) First() (T, bool) {
	if q.head == q.tail {
		return q.zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = q.zero
	q.head = (q.head + 1) & q.mask
	return item, true
}

// computeSize returns mask for buffer large enough to hold length items and a free slot.
func computeSize(length int) int {
	if length < minSize {
		return minSize
	}

	length |= length >> 1
	length |= length >> 2
	length |= length >> 4
	length |= length >> 8
	length |= length >> 16
	return length | length>>32
}

func (q *Queue[T]) grow() {
	items := make([]T, (q.mask+1)<<1)
	n := copy(items, q.items[q.head:])
	copy(items[n:], q.items[:q.head])
	q.head = 0
	q.tail = q.mask + 1
	q.mask = len(items) - 1
	q.items = items
}

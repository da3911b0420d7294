// Package minheap implements a generic binary min-heap driven by a
// comparator. It is the sequencing primitive behind the alignment
// search's uniform-cost frontier and carries no net-specific logic.
package minheap

// Heap is a binary min-heap over T. The comparator returns a negative
// value when a orders before b, zero when equal, positive otherwise.
// The minimal element under the comparator sits at the root.
type Heap[T any] struct {
	items []T
	cmp   func(a, b T) int
}

// New creates an empty heap with the given comparator.
func New[T any](cmp func(a, b T) int) *Heap[T] {
	return &Heap[T]{cmp: cmp}
}

// Heapify builds a heap from a slice in O(n). The slice is owned by the
// heap afterwards.
func Heapify[T any](items []T, cmp func(a, b T) int) *Heap[T] {
	h := &Heap[T]{items: items, cmp: cmp}
	for i := len(items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}
	return h
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push adds an element in O(log n).
func (h *Heap[T]) Push(x T) {
	h.items = append(h.items, x)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimal element in O(log n).
// The second return value is false when the heap is empty.
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = zero
	h.items = h.items[:last]
	if last > 0 {
		h.siftDown(0)
	}
	return top, true
}

// Peek returns the minimal element without removing it, in O(1).
func (h *Heap[T]) Peek() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}
	return h.items[0], true
}

// ReplaceTop replaces the root with x and re-sifts in O(log n),
// returning the displaced root. On an empty heap it acts as Push and
// returns false.
func (h *Heap[T]) ReplaceTop(x T) (T, bool) {
	var zero T
	if len(h.items) == 0 {
		h.Push(x)
		return zero, false
	}
	old := h.items[0]
	h.items[0] = x
	h.siftDown(0)
	return old, true
}

func (h *Heap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.cmp(h.items[i], h.items[parent]) >= 0 {
			return
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		if left := 2*i + 1; left < n && h.cmp(h.items[left], h.items[smallest]) < 0 {
			smallest = left
		}
		if right := 2*i + 2; right < n && h.cmp(h.items[right], h.items[smallest]) < 0 {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

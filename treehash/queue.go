package treehash

import (
	"fmt"
	"sync"
)

// Queue is a fixed-capacity FIFO shared by one or more producers and
// consumers. Put blocks while the queue is full and Get blocks while it is
// empty and still open. Once Close has been called and the remaining items
// have been drained, every Get returns ok == false.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	items  []T // ring buffer, len(items) is the capacity
	head   int // index of the oldest item
	count  int // occupied slots, 0..len(items)
	closed bool
}

// NewQueue returns an open queue holding at most capacity items.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: queue capacity must be positive, got %d", ErrConfig, capacity)
	}
	q := &Queue[T]{items: make([]T, capacity)}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// Put appends item at the tail, waiting for a free slot if necessary.
// It returns ErrQueueClosed if the queue was closed before or while waiting.
func (q *Queue[T]) Put(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == len(q.items) && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrQueueClosed
	}

	q.items[(q.head+q.count)%len(q.items)] = item
	q.count++
	q.notEmpty.Signal()
	return nil
}

// Get removes and returns the item at the head. It blocks while the queue is
// empty and open. ok is false only when the queue is closed and drained.
func (q *Queue[T]) Get() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.count == 0 {
		// Closed and drained. Pass the wake-up on so no other waiter is stranded.
		q.notEmpty.Signal()
		return item, false
	}

	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--
	q.notFull.Signal()
	return item, true
}

// Close marks the end of work. It is safe to call more than once.
// Items already queued are still delivered by Get.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the number of items currently queued.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue[T]) Cap() int {
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

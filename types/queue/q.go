package queue

import "github.com/ef-ds/deque"

// Q is a typed stack/queue over a ring deque. Push/Pop operate on the back,
// Enqueue/Dequeue implement FIFO order. All operations are O(1) amortized.
type Q[T any] struct {
	d *deque.Deque
}

// New creates a new Q
func New[T any]() *Q[T] {
	return &Q[T]{d: deque.New()}
}

// Push adds an item to the top of the stack
func (q *Q[T]) Push(item T) {
	q.d.PushBack(item)
}

// Pop removes and returns the top item from the stack
func (q *Q[T]) Pop() (T, bool) {
	return typed[T](q.d.PopBack())
}

// Peek returns the top item from the stack without removing it
func (q *Q[T]) Peek() (T, bool) {
	return typed[T](q.d.Back())
}

// Enqueue adds an item to the end of the queue
func (q *Q[T]) Enqueue(item T) {
	q.d.PushBack(item)
}

// Dequeue removes and returns the first item from the queue
func (q *Q[T]) Dequeue() (T, bool) {
	return typed[T](q.d.PopFront())
}

// Len returns the number of items in the Q
func (q *Q[T]) Len() int {
	return q.d.Len()
}

func typed[T any](v interface{}, ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

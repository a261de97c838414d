package game

import "sync"

type Subscriber[T any] func(data T)

type subscription[T any] struct {
	id       uint64
	callback Subscriber[T]
}

// Observer fans a snapshot out to subscribers synchronously, in the order
// they subscribed.
type Observer[T any] struct {
	mu          sync.Mutex
	nextID      uint64
	subscribers []subscription[T]
	data        func() T
}

func NewObserver[T any](data func() T) *Observer[T] {
	return &Observer[T]{data: data}
}

// Subscribe registers callback and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (o *Observer[T]) Subscribe(callback Subscriber[T]) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.nextID++
	id := o.nextID
	o.subscribers = append(o.subscribers, subscription[T]{id: id, callback: callback})

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()

		for i, sub := range o.subscribers {
			if sub.id == id {
				o.subscribers = append(o.subscribers[:i:i], o.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (o *Observer[T]) Notify() {
	o.mu.Lock()
	subscribers := make([]subscription[T], len(o.subscribers))
	copy(subscribers, o.subscribers)
	o.mu.Unlock()

	data := o.data()
	for _, sub := range subscribers {
		sub.callback(data)
	}
}

func (o *Observer[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subscribers)
}

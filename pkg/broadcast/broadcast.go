// Package broadcast provides a minimal subscriber-counted publish stream.
//
// A Stream allocates its subscriber table lazily on the first Subscribe and
// releases it when the last subscription is cancelled, so an idle stream
// costs nothing and publishing into one is a no-op. Re-subscribing after
// teardown starts from a fresh table with no memory of earlier events.
package broadcast

import "sync"

// Stream is a broadcast channel for values of type T.
// The zero value is ready to use.
type Stream[T any] struct {
	mu     sync.Mutex
	subs   map[int]func(T)
	nextID int
}

// Subscription is a handle for one subscriber on a Stream.
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Cancel detaches the subscriber. It is safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Subscribe attaches fn to the stream and returns its cancellation handle.
func (s *Stream[T]) Subscribe(fn func(T)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return &Subscription{cancel: func() { s.unsubscribe(id) }}
}

// HasSubscribers reports whether at least one subscriber is attached.
func (s *Stream[T]) HasSubscribers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) > 0
}

// Publish delivers v to every current subscriber and returns the number of
// deliveries. Subscribers are invoked outside the stream's lock, so they may
// subscribe or cancel freely.
func (s *Stream[T]) Publish(v T) int {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return len(fns)
}

func (s *Stream[T]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.subs, id)
	if len(s.subs) == 0 {
		s.subs = nil
	}
}

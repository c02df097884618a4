package universe

import "sync"

//Stream is a broadcast holder of the last published value
//a new observer gets the latest value synchronously on Subscribe, then every later Publish
//observers are called in subscription order under the stream lock, so they must not
//publish to or subscribe on the same stream from inside the callback
type Stream[T any] struct {
	mu        sync.Mutex
	latest    T
	hasValue  bool
	nextID    int
	observers []observer[T]
}

type observer[T any] struct {
	id int
	fn func(T)
}

//NewStream creates a stream without a value, observers get nothing until the first Publish
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

//NewStreamWithValue creates a stream that replays v to the first observers
func NewStreamWithValue[T any](v T) *Stream[T] {
	return &Stream[T]{latest: v, hasValue: true}
}

//Subscribe registers fn and replays the latest value to it
//the returned func removes the observer
func (s *Stream[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer[T]{id: id, fn: fn})
	if s.hasValue {
		fn(s.latest)
	}
	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

//Publish stores v as the latest value and delivers it to all observers
func (s *Stream[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = v
	s.hasValue = true
	for _, o := range s.observers {
		o.fn(v)
	}
}

//Value returns the latest value and whether there is one
func (s *Stream[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasValue
}

//Reset drops the latest value so late observers get no replay until the next Publish
func (s *Stream[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.latest = zero
	s.hasValue = false
}

func (s *Stream[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

package stream

import (
	"sync"
)

// Stream is an unbounded FIFO. Push never blocks; Pull waits for an element.
type Stream[T any] struct {
	name     string
	elements []T
	*sync.Cond
}

func NewStream[T any](name string) *Stream[T] {
	return &Stream[T]{
		Cond: sync.NewCond(&sync.Mutex{}),
		name: name,
	}
}

func (s *Stream[T]) Name() string {
	return s.name
}

func (s *Stream[T]) Push(element T) {
	s.Cond.L.Lock()
	s.elements = append(s.elements, element)
	s.Cond.Signal()
	s.Cond.L.Unlock()
}

func (s *Stream[T]) Pull() T {
	s.Cond.L.Lock()
	defer s.Cond.L.Unlock()
	for len(s.elements) == 0 {
		s.Cond.Wait()
	}
	element := s.elements[0]
	s.elements = s.elements[1:]
	return element
}

// PullAll drains everything pushed so far without waiting.
func (s *Stream[T]) PullAll() []T {
	s.Cond.L.Lock()
	elements := s.elements
	s.elements = nil
	s.Cond.L.Unlock()
	return elements
}

func (s *Stream[T]) Len() int {
	s.Cond.L.Lock()
	defer s.Cond.L.Unlock()
	return len(s.elements)
}

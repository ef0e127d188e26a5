package service

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Latest keeps the most recent result of a repeated load. Every load takes a
// token from Begin; Set only stores when its token is newer than the one
// already stored, so a slow older load cannot overwrite a newer result.
type Latest[T any] struct {
	mu     sync.Mutex
	issued uint64
	stored uint64
	value  T
	has    bool
	err    error
}

func (l *Latest[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	return l.issued
}

// Set records the outcome of the load holding token and reports whether it
// was kept. A failed load keeps the previous value and records err.
func (l *Latest[T]) Set(token uint64, value T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if token <= l.stored {
		return false
	}
	l.stored = token
	l.err = err
	if err == nil {
		l.value = value
		l.has = true
	}
	return true
}

func (l *Latest[T]) Get() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.has
}

// Err is the error of the newest stored load, nil if it succeeded.
func (l *Latest[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// latestSet holds one Latest per key, such as a dashboard period.
type latestSet[K comparable, T any] struct {
	mu sync.Mutex
	m  map[K]*Latest[T]
}

func (s *latestSet[K, T]) get(key K) *Latest[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[K]*Latest[T])
	}
	l, ok := s.m[key]
	if !ok {
		l = &Latest[T]{}
		s.m[key] = l
	}
	return l
}

// loadInto runs load under a token from holder. When load fails and an
// earlier result exists, that result is returned with markStale applied.
func loadInto[T any](holder *Latest[T], name string, load func() (T, error), markStale func(*T, error)) (T, error) {
	token := holder.Begin()
	value, err := load()
	holder.Set(token, value, err)
	if err == nil {
		return value, nil
	}

	prev, ok := holder.Get()
	if !ok {
		var zero T
		return zero, err
	}
	logrus.WithError(err).WithField("view", name).Warn("Load failed, serving previous result")
	markStale(&prev, err)
	return prev, nil
}

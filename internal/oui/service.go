package oui

import (
	"sync/atomic"
	"time"
)

// Service holds the currently loaded index behind an atomic pointer.
// Reload is build-aside-and-swap: a new index is built off to the side and
// Swap publishes it; the old one is never mutated, so any number of
// concurrent Resolve callers need no locking.
//
// Resolving before the first successful Swap is a caller contract violation
// and returns ErrIndexNotReady.
type Service struct {
	cur      atomic.Pointer[Index]
	loadedAt atomic.Pointer[time.Time]
}

func NewService() *Service { return &Service{} }

// Swap publishes ix as the current index.
func (s *Service) Swap(ix *Index) {
	s.cur.Store(ix)
	now := time.Now().UTC()
	s.loadedAt.Store(&now)
}

// Ready reports whether an index has been published.
func (s *Service) Ready() bool { return s.cur.Load() != nil }

// Index returns the current index, nil before the first Swap.
func (s *Service) Index() *Index { return s.cur.Load() }

// LoadedAt returns when the current index was published (zero before).
func (s *Service) LoadedAt() time.Time {
	if t := s.loadedAt.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// Resolve looks mac up in the current index.
func (s *Service) Resolve(mac string) (Result, error) {
	ix := s.cur.Load()
	if ix == nil {
		return Result{}, ErrIndexNotReady
	}
	return ix.Resolve(mac)
}

// internal/store/application_store.go
package store

import (
	"sync"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/models"
)

// ApplicationStore is the authoritative in-memory collection of submitted
// applications. Mutations are last-write-wins; every mutation fires the
// subscriber list in registration order, fire-and-forget.
type ApplicationStore struct {
	mu     sync.Mutex
	apps   []models.Application
	subs   []subscription
	nextID int
	logger logger.Logger
}

type subscription struct {
	id int
	fn func()
}

func NewApplicationStore(seed []models.Application, log logger.Logger) *ApplicationStore {
	apps := make([]models.Application, len(seed))
	copy(apps, seed)
	return &ApplicationStore{
		apps:   apps,
		logger: log.WithFields(map[string]interface{}{"component": "application-store"}),
	}
}

// Snapshot returns a copy of the submitted pool.
func (s *ApplicationStore) Snapshot() []models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Application, len(s.apps))
	copy(out, s.apps)
	return out
}

// Get returns the application with the given id.
func (s *ApplicationStore) Get(id string) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Application{}, errors.NewUnknownApplicationError(id)
}

// Commit replaces the record matching updated.ID. Committing an unknown id
// leaves the pool untouched and surfaces the failure instead of swallowing
// it; no notification fires.
func (s *ApplicationStore) Commit(updated models.Application) error {
	s.mu.Lock()
	replaced := false
	for i := range s.apps {
		if s.apps[i].ID == updated.ID {
			s.apps[i] = updated
			replaced = true
			break
		}
	}
	s.mu.Unlock()

	if !replaced {
		return errors.NewUnknownApplicationError(updated.ID)
	}

	s.logger.Debug("application committed", map[string]interface{}{
		"applicationId": updated.ID,
		"status":        updated.Status,
	})
	s.broadcast()
	return nil
}

// Subscribe registers a change listener and returns its unsubscribe func.
func (s *ApplicationStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.subs {
			if s.subs[i].id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// broadcast invokes listeners outside the lock so subscribers can re-read.
// No delivery or cross-subscriber ordering guarantee beyond registration
// order.
func (s *ApplicationStore) broadcast() {
	s.mu.Lock()
	listeners := make([]func(), len(s.subs))
	for i, sub := range s.subs {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// take removes and returns an application; used by the draft ledger when a
// low-quality mark moves a record between pools.
func (s *ApplicationStore) take(id string) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.apps {
		if s.apps[i].ID == id {
			app := s.apps[i]
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			return app, true
		}
	}
	return models.Application{}, false
}

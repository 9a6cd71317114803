// Package viewstate holds the console's cached copy of the remote event and
// sponsor lists. The refresh step is the only writer; collections are
// replaced wholesale and never patched in place.
package viewstate

import (
	"sync"

	"boxoffice/pkg/api"
)

// Snapshot is a consistent, independent copy of the store.
type Snapshot struct {
	Events    []api.Event
	Sponsors  []api.Sponsor
	LoadError string
	Version   uint64
}

func (s Snapshot) Event(id uint) (api.Event, bool) {
	for _, e := range s.Events {
		if e.ID == id {
			return e, true
		}
	}
	return api.Event{}, false
}

type Store struct {
	mu        sync.RWMutex
	events    []api.Event
	sponsors  []api.Sponsor
	loadError string
	version   uint64
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Events() []api.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyEvents(s.events)
}

func (s *Store) Sponsors() []api.Sponsor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySponsors(s.sponsors)
}

func (s *Store) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadError
}

// Version increases on every write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Events:    copyEvents(s.events),
		Sponsors:  copySponsors(s.sponsors),
		LoadError: s.loadError,
		Version:   s.version,
	}
}

// Replace installs both freshly fetched lists under one lock and clears any
// load error. Readers see either the old pair or the new pair.
func (s *Store) Replace(events []api.Event, sponsors []api.Sponsor) {
	freshEvents := copyEvents(events)
	freshSponsors := copySponsors(sponsors)
	s.mu.Lock()
	s.events = freshEvents
	s.sponsors = freshSponsors
	s.loadError = ""
	s.version++
	s.mu.Unlock()
}

func (s *Store) ReplaceSponsors(sponsors []api.Sponsor) {
	fresh := copySponsors(sponsors)
	s.mu.Lock()
	s.sponsors = fresh
	s.version++
	s.mu.Unlock()
}

// SetLoadError marks the events panel as degraded. The last known lists are
// kept so the rest of the console stays usable.
func (s *Store) SetLoadError(msg string) {
	s.mu.Lock()
	s.loadError = msg
	s.version++
	s.mu.Unlock()
}

func copyEvents(in []api.Event) []api.Event {
	if in == nil {
		return nil
	}
	out := make([]api.Event, len(in))
	for i, e := range in {
		e.Tiers = append([]api.Tier(nil), e.Tiers...)
		e.Sponsors = append([]api.Sponsor(nil), e.Sponsors...)
		out[i] = e
	}
	return out
}

func copySponsors(in []api.Sponsor) []api.Sponsor {
	if in == nil {
		return nil
	}
	return append([]api.Sponsor(nil), in...)
}

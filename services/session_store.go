package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/utils"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "blackfish",
	Name:      "active_page_sessions",
	Help:      "Page sessions currently held in memory.",
})

// PageFactory builds the component state for a new page session.
type PageFactory func(id string) *components.Page

type pageEntry struct {
	page    *components.Page
	visitor string
}

// SessionStore keeps one Page per page view, keyed by page id. Each page
// belongs to the visitor whose request created it.
type SessionStore struct {
	mu      sync.RWMutex
	pages   map[string]*pageEntry
	factory PageFactory

	TTL time.Duration
	Now func() time.Time
	// OnEvict runs after a page has been removed and closed.
	OnEvict func(id string)
}

func NewSessionStore(factory PageFactory, ttl time.Duration) *SessionStore {
	return &SessionStore{
		pages:   make(map[string]*pageEntry),
		factory: factory,
		TTL:     ttl,
		Now:     time.Now,
	}
}

// Get returns a live page and marks it as seen.
func (s *SessionStore) Get(id string) (*components.Page, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	entry.page.Touch()
	return entry.page, true
}

// Create opens a new page view for visitor.
func (s *SessionStore) Create(visitor string) *components.Page {
	id := uuid.NewString()
	page := s.factory(id)

	s.mu.Lock()
	s.pages[id] = &pageEntry{page: page, visitor: visitor}
	n := len(s.pages)
	s.mu.Unlock()

	activeSessions.Set(float64(n))
	utils.InfoLogger.WithFields(logrus.Fields{
		"page_id":    id,
		"visitor_id": visitor,
	}).Debug("Page session created")
	return page
}

// Resolve returns visitor's page with the given id. An unknown id, or one
// owned by another visitor, opens a fresh page instead.
func (s *SessionStore) Resolve(visitor, id string) (*components.Page, bool) {
	if id != "" {
		s.mu.RLock()
		entry, ok := s.pages[id]
		s.mu.RUnlock()
		if ok && entry.visitor == visitor {
			entry.page.Touch()
			return entry.page, false
		}
	}
	return s.Create(visitor), true
}

func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	entry, ok := s.pages[id]
	delete(s.pages, id)
	n := len(s.pages)
	s.mu.Unlock()
	if !ok {
		return
	}
	activeSessions.Set(float64(n))
	entry.page.Close()
	if s.OnEvict != nil {
		s.OnEvict(id)
	}
}

// EvictIdle closes every page not seen within TTL and returns how many were
// removed.
func (s *SessionStore) EvictIdle() int {
	cutoff := s.Now().Add(-s.TTL)

	s.mu.RLock()
	var idle []string
	for id, entry := range s.pages {
		if entry.page.LastSeen().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range idle {
		s.Remove(id)
	}
	return len(idle)
}

func (s *SessionStore) CloseAll() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.pages))
	for id := range s.pages {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.Remove(id)
	}
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

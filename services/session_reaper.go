package services

import (
	"sync"
	"time"

	"github.com/yeremiapane/blackfish/utils"
)

// SessionReaper periodically evicts idle page sessions.
type SessionReaper struct {
	Store    *SessionStore
	StopChan chan struct{}
	Interval time.Duration

	stopOnce sync.Once
}

func NewSessionReaper(store *SessionStore) *SessionReaper {
	return &SessionReaper{
		Store:    store,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Minute,
	}
}

func (r *SessionReaper) Start() {
	go func() {
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.StopChan:
				return
			}
		}
	}()
}

func (r *SessionReaper) Stop() {
	r.stopOnce.Do(func() {
		close(r.StopChan)
	})
}

func (r *SessionReaper) sweep() {
	if n := r.Store.EvictIdle(); n > 0 {
		utils.InfoLogger.Printf("Evicted %d idle page sessions, %d remaining", n, r.Store.Len())
	}
}

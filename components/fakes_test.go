package components

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/models"
)

type fakeTask struct {
	s       *fakeScheduler
	due     time.Duration
	f       func()
	fired   bool
	stopped bool
}

func (t *fakeTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeScheduler fires tasks synchronously from Advance, in due order.
type fakeScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTask{s: s, due: s.now + d, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		var next *fakeTask
		for _, t := range s.tasks {
			if t.fired || t.stopped || t.due > target {
				continue
			}
			if next == nil || t.due < next.due {
				next = t
			}
		}
		if next == nil {
			break
		}
		s.now = next.due
		next.fired = true
		s.mu.Unlock()
		next.f()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

type fakeBackOffice struct {
	mu      sync.Mutex
	calls   []models.ReservationRequest
	outcome models.ReservationOutcome
	err     error
}

func (b *fakeBackOffice) Accept(_ context.Context, req models.ReservationRequest) (models.ReservationOutcome, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, req)
	return b.outcome, b.err
}

func (b *fakeBackOffice) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type recordedEvent struct {
	session string
	event   string
	data    interface{}
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) Notify(sessionID, event string, data interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{sessionID, event, data})
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

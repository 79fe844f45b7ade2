package components

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/blackfish/content"
)

// Event names pushed to a page's live connections.
const (
	EventReservationUpdate = "reservation_update"
	EventGalleryUpdate     = "gallery_update"
	EventNavbarUpdate      = "navbar_update"
	EventPageState         = "page_state"
)

// Notifier pushes an event to every live connection of one page session.
type Notifier interface {
	Notify(sessionID, event string, data interface{})
}

type PageDeps struct {
	Site        *content.Site
	Reservation ReservationConfig
	BackOffice  BackOffice
	Scheduler   Scheduler
	Notifier    Notifier
	Logger      logrus.FieldLogger
	Now         func() time.Time
}

type PageSnapshot struct {
	PageID       string              `json:"page_id"`
	Navbar       NavbarSnapshot      `json:"navbar"`
	Gallery      GallerySnapshot     `json:"gallery"`
	Reservations ReservationSnapshot `json:"reservations"`
}

// Page owns the component state of one page view.
type Page struct {
	ID           string
	Site         *content.Site
	Navbar       *Navbar
	Gallery      *Gallery
	Reservations *ReservationForm

	now      func() time.Time
	mu       sync.Mutex
	lastSeen time.Time
}

func NewPage(id string, deps PageDeps) *Page {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = logrus.StandardLogger()
	}
	p := &Page{
		ID:       id,
		Site:     deps.Site,
		Navbar:   NewNavbar(),
		Gallery:  NewGallery(deps.Site.Gallery),
		now:      deps.Now,
		lastSeen: deps.Now(),
	}
	notifier := deps.Notifier
	p.Reservations = NewReservationForm(deps.Reservation, ReservationDeps{
		BackOffice: deps.BackOffice,
		Scheduler:  deps.Scheduler,
		Logger:     deps.Logger.WithField("page_id", id),
		OnChange: func(s ReservationSnapshot) {
			if notifier != nil {
				notifier.Notify(id, EventReservationUpdate, s)
			}
		},
	})
	return p
}

func (p *Page) Touch() {
	p.mu.Lock()
	p.lastSeen = p.now()
	p.mu.Unlock()
}

func (p *Page) LastSeen() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastSeen
}

func (p *Page) Snapshot() PageSnapshot {
	return PageSnapshot{
		PageID:       p.ID,
		Navbar:       p.Navbar.Snapshot(),
		Gallery:      p.Gallery.Snapshot(),
		Reservations: p.Reservations.Snapshot(),
	}
}

// Close releases the page's pending timers.
func (p *Page) Close() {
	p.Reservations.Close()
}

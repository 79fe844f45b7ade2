package components

import "sync"

// ScrollThreshold is the vertical offset past which the header turns solid.
const ScrollThreshold = 50

type NavLink struct {
	Label  string `json:"label"`
	Anchor string `json:"anchor"`
}

// NavLinks are the in-page anchors of the header, in display order. The
// reservations link is rendered separately as the call to action.
var NavLinks = []NavLink{
	{Label: "About", Anchor: "#about"},
	{Label: "Menu", Anchor: "#menu"},
	{Label: "Gallery", Anchor: "#gallery"},
	{Label: "Contact", Anchor: "#contact"},
}

var ReservationsLink = NavLink{Label: "Reservations", Anchor: "#reservations"}

type NavbarSnapshot struct {
	Scrolled bool `json:"scrolled"`
	MenuOpen bool `json:"menu_open"`
}

type Navbar struct {
	mu       sync.Mutex
	scrolled bool
	menuOpen bool
}

func NewNavbar() *Navbar {
	return &Navbar{}
}

// Scroll records the latest vertical offset and reports whether the header
// state changed.
func (n *Navbar) Scroll(y float64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	scrolled := y > ScrollThreshold
	changed := scrolled != n.scrolled
	n.scrolled = scrolled
	return changed
}

func (n *Navbar) ToggleMenu() {
	n.mu.Lock()
	n.menuOpen = !n.menuOpen
	n.mu.Unlock()
}

// CloseMenu is called when a link in the mobile menu is followed.
func (n *Navbar) CloseMenu() {
	n.mu.Lock()
	n.menuOpen = false
	n.mu.Unlock()
}

func (n *Navbar) Snapshot() NavbarSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return NavbarSnapshot{Scrolled: n.scrolled, MenuOpen: n.menuOpen}
}

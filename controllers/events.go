package controllers

import (
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/models"
)

// ClientEvent is one interaction sent by the browser, over the live channel
// or the JSON API.
type ClientEvent struct {
	Event    string                     `json:"event"`
	Y        float64                    `json:"y,omitempty"`
	Category models.GalleryCategory     `json:"category,omitempty"`
	ImageID  int                        `json:"image_id,omitempty"`
	Via      components.CloseAffordance `json:"via,omitempty"`
	Field    string                     `json:"field,omitempty"`
	Value    string                     `json:"value,omitempty"`
	Draft    *models.ReservationRequest `json:"draft,omitempty"`
}

const (
	EventScroll         = "scroll"
	EventToggleMenu     = "toggle_menu"
	EventCloseMenu      = "close_menu"
	EventSelectCategory = "select_category"
	EventOpenLightbox   = "open_lightbox"
	EventCloseLightbox  = "close_lightbox"
	EventLightboxClick  = "lightbox_click"
	EventUpdateField    = "update_field"
	EventSubmit         = "submit"
	EventRevise         = "revise"
	EventSync           = "sync"
)

// Reply is what the server answers to one event: the push event name and
// the state of the component that handled it. An empty Event means nothing
// needs to be pushed.
type Reply struct {
	Event string
	Data  interface{}
}

// Dispatch applies ev to the page's components. Errors leave state as it was
// and the reply still carries the current component state.
func Dispatch(page *components.Page, ev ClientEvent) (Reply, error) {
	switch ev.Event {
	case EventScroll:
		if !page.Navbar.Scroll(ev.Y) {
			return Reply{}, nil
		}
		return navbarReply(page), nil
	case EventToggleMenu:
		page.Navbar.ToggleMenu()
		return navbarReply(page), nil
	case EventCloseMenu:
		page.Navbar.CloseMenu()
		return navbarReply(page), nil

	case EventSelectCategory:
		err := page.Gallery.SelectCategory(ev.Category)
		return galleryReply(page), err
	case EventOpenLightbox:
		err := page.Gallery.Open(ev.ImageID)
		return galleryReply(page), err
	case EventCloseLightbox:
		err := page.Gallery.Close(ev.Via)
		return galleryReply(page), err
	case EventLightboxClick:
		page.Gallery.ClickInside()
		return Reply{}, nil

	case EventUpdateField:
		err := page.Reservations.Update(ev.Field, ev.Value)
		return reservationReply(page), err
	case EventSubmit:
		if ev.Draft != nil {
			if err := page.Reservations.Fill(*ev.Draft); err != nil {
				return reservationReply(page), err
			}
		}
		_, err := page.Reservations.Submit()
		return reservationReply(page), err
	case EventRevise:
		err := page.Reservations.Revise()
		return reservationReply(page), err

	case EventSync:
		return Reply{Event: components.EventPageState, Data: page.Snapshot()}, nil
	}
	return Reply{}, models.ValidationError{Field: "event", Msg: "unknown event " + ev.Event}
}

func navbarReply(page *components.Page) Reply {
	return Reply{Event: components.EventNavbarUpdate, Data: page.Navbar.Snapshot()}
}

func galleryReply(page *components.Page) Reply {
	return Reply{Event: components.EventGalleryUpdate, Data: page.Gallery.Snapshot()}
}

func reservationReply(page *components.Page) Reply {
	return Reply{Event: components.EventReservationUpdate, Data: page.Reservations.Snapshot()}
}

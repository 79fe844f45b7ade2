package components

import (
	"sync"

	"github.com/yeremiapane/blackfish/models"
)

// CloseAffordance names the control used to dismiss the lightbox.
type CloseAffordance string

const (
	CloseButton   CloseAffordance = "close_button"
	CloseBackdrop CloseAffordance = "backdrop"
)

type GallerySnapshot struct {
	Active   models.GalleryCategory `json:"active_category"`
	Visible  []models.GalleryImage  `json:"visible"`
	Selected *models.GalleryImage   `json:"selected_image"`
}

// Gallery holds the filter and lightbox state of one page view. The
// fixture slice is shared and read-only.
type Gallery struct {
	mu       sync.Mutex
	images   []models.GalleryImage
	active   models.GalleryCategory
	selected *models.GalleryImage
}

func NewGallery(images []models.GalleryImage) *Gallery {
	return &Gallery{images: images, active: models.CategoryAll}
}

func (g *Gallery) SelectCategory(c models.GalleryCategory) error {
	if !c.Valid() {
		return models.ValidationError{Field: "category", Msg: "unknown gallery category"}
	}
	g.mu.Lock()
	g.active = c
	g.mu.Unlock()
	return nil
}

func (g *Gallery) Visible() []models.GalleryImage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visibleLocked()
}

func (g *Gallery) visibleLocked() []models.GalleryImage {
	if g.active == models.CategoryAll {
		out := make([]models.GalleryImage, len(g.images))
		copy(out, g.images)
		return out
	}
	out := make([]models.GalleryImage, 0, len(g.images))
	for _, img := range g.images {
		if img.Category == g.active {
			out = append(out, img)
		}
	}
	return out
}

// Open enlarges an image. Only images in the current filtered view can be
// opened.
func (g *Gallery) Open(id int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, img := range g.visibleLocked() {
		if img.ID == id {
			selected := img
			g.selected = &selected
			return nil
		}
	}
	return models.NotFoundError{Resource: "gallery image"}
}

func (g *Gallery) Close(via CloseAffordance) error {
	switch via {
	case CloseButton, CloseBackdrop:
	default:
		return models.ValidationError{Field: "via", Msg: "unknown close control"}
	}
	g.mu.Lock()
	g.selected = nil
	g.mu.Unlock()
	return nil
}

// ClickInside handles a click on the enlarged image itself. It never
// dismisses the lightbox.
func (g *Gallery) ClickInside() {}

func (g *Gallery) Snapshot() GallerySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	snap := GallerySnapshot{Active: g.active, Visible: g.visibleLocked()}
	if g.selected != nil {
		selected := *g.selected
		snap.Selected = &selected
	}
	return snap
}

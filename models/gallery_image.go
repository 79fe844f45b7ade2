package models

type GalleryCategory string

const (
	CategoryAll       GalleryCategory = "all"
	CategoryInterior  GalleryCategory = "interior"
	CategoryCocktails GalleryCategory = "cocktails"
	CategoryEvents    GalleryCategory = "events"
)

// GalleryFilters is the filter button set, in display order.
var GalleryFilters = []GalleryFilter{
	{ID: CategoryAll, Label: "All"},
	{ID: CategoryInterior, Label: "Interior"},
	{ID: CategoryCocktails, Label: "Cocktails"},
	{ID: CategoryEvents, Label: "Events"},
}

type GalleryFilter struct {
	ID    GalleryCategory
	Label string
}

type GalleryImage struct {
	ID       int             `json:"id" yaml:"id"`
	Src      string          `json:"src" yaml:"src"`
	Alt      string          `json:"alt" yaml:"alt"`
	Category GalleryCategory `json:"category" yaml:"category"`
}

// Valid reports whether c is one of the four filter values.
func (c GalleryCategory) Valid() bool {
	switch c {
	case CategoryAll, CategoryInterior, CategoryCocktails, CategoryEvents:
		return true
	}
	return false
}

// IsImageCategory reports whether c may be attached to an image ("all" may not).
func (c GalleryCategory) IsImageCategory() bool {
	return c != CategoryAll && c.Valid()
}

var placeholderColors = []string{
	"bg-gray-900", "bg-gray-800", "bg-gray-700",
	"bg-gray-800", "bg-gray-900", "bg-gray-700",
}

// PlaceholderColor picks a stable background class from the image id.
func PlaceholderColor(id int) string {
	n := id % len(placeholderColors)
	if n < 0 {
		n += len(placeholderColors)
	}
	return placeholderColors[n]
}

// Package content loads the static copy, menu and gallery fixtures shown on
// the page. The fixtures are read once and never change afterwards.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/yeremiapane/blackfish/models"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultDocument []byte

type Venue struct {
	Name      string   `yaml:"name"`
	Tagline   string   `yaml:"tagline"`
	About     []string `yaml:"about"`
	Phone     string   `yaml:"phone"`
	Hours     string   `yaml:"hours"`
	HeroVideo string   `yaml:"hero_video"`
}

type Site struct {
	Venue   Venue                 `yaml:"venue"`
	Menu    []models.MenuItem     `yaml:"menu"`
	Gallery []models.GalleryImage `yaml:"gallery"`
}

// Default returns the fixtures compiled into the binary.
func Default() (*Site, error) {
	return Parse(defaultDocument)
}

// Load reads an override document; an empty path yields Default.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(raw, &site); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) validate() error {
	if s.Venue.Name == "" {
		return models.ValidationError{Field: "venue.name", Msg: "is required"}
	}
	if len(s.Gallery) == 0 {
		return models.ValidationError{Field: "gallery", Msg: "needs at least one image"}
	}

	seen := make(map[int]bool, len(s.Gallery))
	for _, img := range s.Gallery {
		if seen[img.ID] {
			return models.ValidationError{Field: "gallery", Msg: fmt.Sprintf("duplicate image id %d", img.ID)}
		}
		seen[img.ID] = true
		if !img.Category.IsImageCategory() {
			return models.ValidationError{Field: "gallery", Msg: fmt.Sprintf("image %d has unknown category %q", img.ID, img.Category)}
		}
	}

	seen = make(map[int]bool, len(s.Menu))
	for _, item := range s.Menu {
		if seen[item.ID] {
			return models.ValidationError{Field: "menu", Msg: fmt.Sprintf("duplicate item id %d", item.ID)}
		}
		seen[item.ID] = true
		if !item.Category.Valid() {
			return models.ValidationError{Field: "menu", Msg: fmt.Sprintf("item %d has unknown category %q", item.ID, item.Category)}
		}
	}
	return nil
}

// Image looks up a gallery fixture by id.
func (s *Site) Image(id int) (models.GalleryImage, bool) {
	for _, img := range s.Gallery {
		if img.ID == id {
			return img, true
		}
	}
	return models.GalleryImage{}, false
}

package models

type MenuCategory string

const (
	MenuSignature MenuCategory = "signature"
	MenuClassic   MenuCategory = "classic"
	MenuMocktail  MenuCategory = "mocktail"
)

func (c MenuCategory) Valid() bool {
	switch c {
	case MenuSignature, MenuClassic, MenuMocktail:
		return true
	}
	return false
}

func (c MenuCategory) Label() string {
	switch c {
	case MenuSignature:
		return "Signature"
	case MenuClassic:
		return "Classic"
	}
	return "Alcohol-Free"
}

type MenuItem struct {
	ID          int          `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"description"`
	Price       string       `json:"price" yaml:"price"`
	Category    MenuCategory `json:"category" yaml:"category"`
}

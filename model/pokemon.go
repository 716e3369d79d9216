package model

import (
	"fmt"
	"time"
)

// Pokemon is one catalog entry. Rows are seeded once by the seed CLI and
// treated as immutable for the lifetime of the server process.
type Pokemon struct {
	PokedexNumber int       `json:"pokedex_number" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"uniqueIndex;not null"`
	Type1         string    `json:"type1" gorm:"not null"`
	Type2         *string   `json:"type2"`
	Generation    int       `json:"generation" gorm:"index;not null"`
	Height        float64   `json:"height" gorm:"not null"` // meters
	Weight        float64   `json:"weight" gorm:"not null"` // kilograms
	BaseStatTotal int       `json:"base_stat_total" gorm:"not null"`
	IsLegendary   bool      `json:"is_legendary" gorm:"not null;default:false"`
	Color         string    `json:"color" gorm:"not null"`
	Habitat       *string   `json:"habitat"`
	ImageURL      string    `json:"image_url"`  // official artwork
	SpriteURL     string    `json:"sprite_url"` // in-game sprite
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p Pokemon) String() string {
	return fmt.Sprintf("#%d - %s", p.PokedexNumber, p.Name)
}

// DisplayImage returns the best available image URL, preferring artwork.
func (p *Pokemon) DisplayImage() string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.SpriteURL
}

func (p *Pokemon) HasImage() bool {
	return p.ImageURL != "" || p.SpriteURL != ""
}

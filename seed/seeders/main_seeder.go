package seeders

import (
	"github.com/pokedle-game/pokedle_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all database seeding
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll migrates the schema and fills the catalog for one generation.
func (s *MainSeeder) SeedAll(generation int) error {
	if err := s.db.AutoMigrate(
		&model.Pokemon{},
		&model.GameSession{},
		&model.Guess{},
	); err != nil {
		return err
	}

	return NewPokemonSeeder(s.db).SeedGeneration(generation)
}

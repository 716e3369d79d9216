package repositories

import (
	"github.com/pokedle-game/pokedle_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PokemonRepository handles catalog reads. The table is seeded by the seed
// CLI and read-mostly at runtime.
type PokemonRepository struct {
	BaseRepository
}

func NewPokemonRepository(db *gorm.DB) *PokemonRepository {
	return &PokemonRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (pr *PokemonRepository) ListAll() ([]model.Pokemon, error) {
	var pokemon []model.Pokemon
	if err := pr.db.Order("pokedex_number ASC").Find(&pokemon).Error; err != nil {
		return nil, err
	}
	return pokemon, nil
}

// Upsert writes a catalog row keyed by dex number; used by the seeder only.
func (pr *PokemonRepository) Upsert(pokemon *model.Pokemon) error {
	return pr.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pokedex_number"}},
		UpdateAll: true,
	}).Create(pokemon).Error
}

package services

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/services/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func strPtr(s string) *string {
	return &s
}

func pikachu() model.Pokemon {
	return model.Pokemon{
		PokedexNumber: 25,
		Name:          "Pikachu",
		Type1:         "Electric",
		Generation:    1,
		Height:        0.4,
		Weight:        6.0,
		BaseStatTotal: 320,
		IsLegendary:   false,
		Color:         "Yellow",
		Habitat:       strPtr("Forest"),
		ImageURL:      "https://img.example/pikachu.png",
		SpriteURL:     "https://img.example/pikachu-sprite.png",
	}
}

func raichu() model.Pokemon {
	return model.Pokemon{
		PokedexNumber: 26,
		Name:          "Raichu",
		Type1:         "Electric",
		Generation:    1,
		Height:        0.8,
		Weight:        30.0,
		BaseStatTotal: 485,
		IsLegendary:   false,
		Color:         "Yellow",
		Habitat:       strPtr("Forest"),
		ImageURL:      "https://img.example/raichu.png",
		SpriteURL:     "https://img.example/raichu-sprite.png",
	}
}

func bulbasaur() model.Pokemon {
	return model.Pokemon{
		PokedexNumber: 1,
		Name:          "Bulbasaur",
		Type1:         "Grass",
		Type2:         strPtr("Poison"),
		Generation:    1,
		Height:        0.7,
		Weight:        6.9,
		BaseStatTotal: 318,
		Color:         "Green",
		Habitat:       strPtr("Grassland"),
	}
}

// filler produces distinct wrong-answer pokemon for loss scenarios.
func filler(dexNumber int) model.Pokemon {
	return model.Pokemon{
		PokedexNumber: dexNumber,
		Name:          fmt.Sprintf("Filler%d", dexNumber),
		Type1:         "Normal",
		Generation:    1,
		Height:        float64(dexNumber) / 10,
		Weight:        float64(dexNumber),
		BaseStatTotal: 200 + dexNumber,
		Color:         "Brown",
		Habitat:       strPtr("Grassland"),
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Pokemon{},
		&model.GameSession{},
		&model.Guess{},
	))
	return db
}

// newGameTestEnv wires a GameService over an in-memory database seeded with
// the given catalog. The pokedex rng is seeded so target selection is
// reproducible; tests that need a known target seed a one-entry catalog or
// create the session themselves.
func newGameTestEnv(t *testing.T, catalog ...model.Pokemon) (*GameService, *PokedexService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	for i := range catalog {
		require.NoError(t, db.Create(&catalog[i]).Error)
	}

	sqlSvc := &SqlService{db: db, driver: "sqlite"}

	pokedexSvc := &PokedexService{
		sqlSvc:            sqlSvc,
		pokemonRepo:       repositories.NewPokemonRepository(db),
		defaultGeneration: 1,
		listCacheTTL:      time.Hour,
		rng:               rand.New(rand.NewSource(1)),
	}
	require.NoError(t, pokedexSvc.loadCatalog())

	gameSvc := &GameService{
		sqlSvc:      sqlSvc,
		pokedexSvc:  pokedexSvc,
		maxGuesses:  6,
		sessionRepo: repositories.NewSessionRepository(db),
		guessRepo:   repositories.NewGuessRepository(db),
	}

	return gameSvc, pokedexSvc, db
}

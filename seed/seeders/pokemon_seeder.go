package seeders

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/services/repositories"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PokemonSeeder fills the catalog table from PokeAPI. The server never
// talks to PokeAPI itself; this CLI is the only ingestion path.
type PokemonSeeder struct {
	repo    *repositories.PokemonRepository
	client  *http.Client
	baseURL string
	delay   time.Duration
}

func NewPokemonSeeder(db *gorm.DB) *PokemonSeeder {
	return &PokemonSeeder{
		repo: repositories.NewPokemonRepository(db),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://pokeapi.co/api/v2",
		delay:   100 * time.Millisecond,
	}
}

type apiPokemon struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"` // decimeters
	Weight int    `json:"weight"` // hectograms
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
	} `json:"stats"`
	Species struct {
		URL string `json:"url"`
	} `json:"species"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
		Other        struct {
			OfficialArtwork struct {
				FrontDefault string `json:"front_default"`
			} `json:"official-artwork"`
		} `json:"other"`
	} `json:"sprites"`
}

type apiSpecies struct {
	IsLegendary bool `json:"is_legendary"`
	Color       struct {
		Name string `json:"name"`
	} `json:"color"`
	Habitat *struct {
		Name string `json:"name"`
	} `json:"habitat"`
}

// SeedGeneration pulls every pokemon of a generation and upserts it by dex
// number.
func (s *PokemonSeeder) SeedGeneration(generation int) error {
	// Gen 1 pokemon are dex numbers 1-151
	if generation != 1 {
		return fmt.Errorf("only generation 1 is currently supported")
	}

	created := 0
	failed := 0

	for dexNumber := 1; dexNumber <= 151; dexNumber++ {
		pokemon, err := s.fetchPokemon(dexNumber, generation)
		if err != nil {
			log.WithError(err).Warnf("Failed to fetch pokemon %d", dexNumber)
			failed++
			continue
		}

		if err := s.repo.Upsert(pokemon); err != nil {
			log.WithError(err).Warnf("Failed to store %s", pokemon.Name)
			failed++
			continue
		}

		created++
		log.Infof("Seeded: %s", pokemon)

		// Rate limiting
		time.Sleep(s.delay)
	}

	log.WithFields(log.Fields{
		"generation": generation,
		"seeded":     created,
		"failed":     failed,
	}).Info("Generation seeding finished")

	if failed > 0 && created == 0 {
		return fmt.Errorf("all %d fetches failed", failed)
	}
	return nil
}

func (s *PokemonSeeder) fetchPokemon(dexNumber, generation int) (*model.Pokemon, error) {
	var poke apiPokemon
	if err := s.getJSON(fmt.Sprintf("%s/pokemon/%d", s.baseURL, dexNumber), &poke); err != nil {
		return nil, err
	}

	var species apiSpecies
	if err := s.getJSON(poke.Species.URL, &species); err != nil {
		return nil, err
	}

	type1 := "Unknown"
	var type2 *string
	if len(poke.Types) > 0 {
		type1 = titleCase(poke.Types[0].Type.Name)
	}
	if len(poke.Types) > 1 {
		t2 := titleCase(poke.Types[1].Type.Name)
		type2 = &t2
	}

	baseStatTotal := 0
	for _, stat := range poke.Stats {
		baseStatTotal += stat.BaseStat
	}

	var habitat *string
	if species.Habitat != nil {
		h := titleCase(species.Habitat.Name)
		habitat = &h
	}

	return &model.Pokemon{
		PokedexNumber: poke.ID,
		Name:          titleCase(poke.Name),
		Type1:         type1,
		Type2:         type2,
		Generation:    generation,
		Height:        float64(poke.Height) / 10, // decimeters to meters
		Weight:        float64(poke.Weight) / 10, // hectograms to kilograms
		BaseStatTotal: baseStatTotal,
		IsLegendary:   species.IsLegendary,
		Color:         titleCase(species.Color.Name),
		Habitat:       habitat,
		ImageURL:      poke.Sprites.Other.OfficialArtwork.FrontDefault,
		SpriteURL:     poke.Sprites.FrontDefault,
	}, nil
}

func (s *PokemonSeeder) getJSON(url string, dest interface{}) error {
	resp, err := s.client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

func titleCase(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

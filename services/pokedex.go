package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/pokedle-game/pokedle_api/dto"
	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/services/repositories"
	"github.com/pokedle-game/pokedle_api/shared"
	log "github.com/sirupsen/logrus"
)

// PokedexService is the read-only catalog. All rows are loaded once at
// startup and indexed per generation; nothing mutates the indexes afterwards
// so they are shared across requests without locking.
type PokedexService struct {
	appContext.DefaultService

	sqlSvc   *SqlService
	redisSvc *RedisService

	pokemonRepo *repositories.PokemonRepository

	byDex     map[int]*model.Pokemon
	byGenName map[int]map[string]*model.Pokemon
	byGen     map[int][]*model.Pokemon

	defaultGeneration int
	listCacheTTL      time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

const POKEDEX_SVC = "pokedex_svc"

func (svc PokedexService) Id() string {
	return POKEDEX_SVC
}

func (svc *PokedexService) Configure(ctx *appContext.Context) error {
	svc.defaultGeneration = 1
	if gen := os.Getenv("GAME_GENERATION"); gen != "" {
		if g, err := strconv.Atoi(gen); err == nil && g > 0 {
			svc.defaultGeneration = g
		}
	}

	svc.listCacheTTL = time.Hour
	svc.rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	return svc.DefaultService.Configure(ctx)
}

func (svc *PokedexService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.pokemonRepo = repositories.NewPokemonRepository(svc.sqlSvc.Db())

	return svc.loadCatalog()
}

func (svc *PokedexService) loadCatalog() error {
	all, err := svc.pokemonRepo.ListAll()
	if err != nil {
		return fmt.Errorf("failed to load pokedex: %w", err)
	}

	svc.byDex = make(map[int]*model.Pokemon, len(all))
	svc.byGenName = make(map[int]map[string]*model.Pokemon)
	svc.byGen = make(map[int][]*model.Pokemon)

	for i := range all {
		p := &all[i]
		svc.byDex[p.PokedexNumber] = p

		if svc.byGenName[p.Generation] == nil {
			svc.byGenName[p.Generation] = make(map[string]*model.Pokemon)
		}
		svc.byGenName[p.Generation][strings.ToLower(p.Name)] = p
		svc.byGen[p.Generation] = append(svc.byGen[p.Generation], p)
	}

	log.WithFields(log.Fields{
		"pokemon":     len(all),
		"generations": len(svc.byGen),
	}).Info("Pokedex loaded")

	return nil
}

func (svc *PokedexService) DefaultGeneration() int {
	return svc.defaultGeneration
}

// LookupByName resolves a guess name case-insensitively within a generation.
func (svc *PokedexService) LookupByName(name string, generation int) (*model.Pokemon, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := svc.byGenName[generation][key]; ok {
		return p, nil
	}
	return nil, shared.NewBadRequestError(
		fmt.Errorf("no pokemon %q in generation %d", name, generation),
		fmt.Sprintf("Pokemon not found in Gen %d", generation),
	)
}

func (svc *PokedexService) GetByDexNumber(dexNumber int) (*model.Pokemon, error) {
	if p, ok := svc.byDex[dexNumber]; ok {
		return p, nil
	}
	return nil, shared.NewNotFoundError(
		fmt.Errorf("no pokemon #%d in pokedex", dexNumber),
		"Pokemon not found",
	)
}

// Random picks a uniformly random entry from a generation; the target of
// every new game comes from here.
func (svc *PokedexService) Random(generation int) (*model.Pokemon, error) {
	pool := svc.byGen[generation]
	if len(pool) == 0 {
		return nil, shared.NewInternalError(
			fmt.Errorf("generation %d has no pokemon loaded", generation),
			"Pokedex is empty",
		)
	}

	svc.rngMu.Lock()
	idx := svc.rng.Intn(len(pool))
	svc.rngMu.Unlock()

	return pool[idx], nil
}

// List returns the autocomplete payload, cache-aside through redis.
func (svc *PokedexService) List(generation int) (*dto.PokemonListResponse, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("pokedex:list:%d", generation)

	if svc.redisSvc != nil {
		var cached dto.PokemonListResponse
		if err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached.Pokemon) > 0 {
			return &cached, nil
		}
	}

	pool := svc.byGen[generation]
	resp := &dto.PokemonListResponse{
		Pokemon:     make([]string, 0, len(pool)),
		PokemonData: make([]dto.PokemonListEntry, 0, len(pool)),
	}
	for _, p := range pool {
		resp.Pokemon = append(resp.Pokemon, p.Name)
		resp.PokemonData = append(resp.PokemonData, dto.PokemonListEntry{
			Name:      p.Name,
			ImageURL:  p.ImageURL,
			SpriteURL: p.SpriteURL,
		})
	}

	if svc.redisSvc != nil {
		if err := svc.redisSvc.Set(ctx, cacheKey, resp, svc.listCacheTTL); err != nil {
			log.WithError(err).Warn("Failed to cache pokedex list")
		}
	}

	return resp, nil
}

func (svc *PokedexService) Details(dexNumber int) (*dto.PokemonDetailsResponse, error) {
	p, err := svc.GetByDexNumber(dexNumber)
	if err != nil {
		return nil, err
	}

	return &dto.PokemonDetailsResponse{
		Name:          p.Name,
		PokedexNumber: p.PokedexNumber,
		Type1:         p.Type1,
		Type2:         p.Type2,
		Generation:    p.Generation,
		Height:        p.Height,
		Weight:        p.Weight,
		BaseStatTotal: p.BaseStatTotal,
		IsLegendary:   p.IsLegendary,
		Color:         p.Color,
		Habitat:       p.Habitat,
		ImageURL:      p.ImageURL,
		SpriteURL:     p.SpriteURL,
		DisplayImage:  p.DisplayImage(),
	}, nil
}

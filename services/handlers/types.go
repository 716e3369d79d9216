package handlers

import (
	"github.com/pokedle-game/pokedle_api/dto"
	"github.com/pokedle-game/pokedle_api/model"
)

type GameServiceInterface interface {
	GetOrCreateSession(deviceID string) (*model.GameSession, error)
	StartNewGame(deviceID string) (*model.GameSession, error)
	SubmitGuess(deviceID, pokemonName string) (*dto.GuessResponse, error)
	GetGameState(deviceID string) (*dto.GameStateResponse, error)
	GetSessionStats(deviceID string) (*dto.SessionStatsResponse, error)
}

type PokedexServiceInterface interface {
	DefaultGeneration() int
	List(generation int) (*dto.PokemonListResponse, error)
	Details(dexNumber int) (*dto.PokemonDetailsResponse, error)
}

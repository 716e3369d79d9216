package model

import (
	"testing"

	"github.com/pokedle-game/pokedle_api/shared"
	"github.com/stretchr/testify/assert"
)

func TestGameSessionStatus(t *testing.T) {
	session := GameSession{MaxGuesses: 6}
	assert.Equal(t, shared.GameStatusActive, session.Status())

	session.IsCompleted = true
	assert.Equal(t, shared.GameStatusLost, session.Status())

	session.IsWon = true
	assert.Equal(t, shared.GameStatusWon, session.Status())
}

func TestGameSessionCompletionRate(t *testing.T) {
	session := GameSession{MaxGuesses: 6}
	assert.Equal(t, 0.0, session.CompletionRate())

	session.GuessesCount = 3
	assert.Equal(t, 50.0, session.CompletionRate())
	assert.Equal(t, 3, session.GuessesRemaining())

	session.GuessesCount = 6
	assert.Equal(t, 100.0, session.CompletionRate())
	assert.Equal(t, 0, session.GuessesRemaining())

	zero := GameSession{}
	assert.Equal(t, 0.0, zero.CompletionRate())
}

func TestPokemonDisplayImage(t *testing.T) {
	p := Pokemon{PokedexNumber: 25, Name: "Pikachu"}
	assert.False(t, p.HasImage())
	assert.Equal(t, "", p.DisplayImage())

	p.SpriteURL = "sprite.png"
	assert.Equal(t, "sprite.png", p.DisplayImage())

	p.ImageURL = "artwork.png"
	assert.Equal(t, "artwork.png", p.DisplayImage(), "artwork wins over sprite")

	assert.Equal(t, "#25 - Pikachu", p.String())
}

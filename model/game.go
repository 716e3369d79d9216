package model

import (
	"time"

	"github.com/pokedle-game/pokedle_api/shared"
)

// GameSession is one game for one device. At most one session per device
// may have IsCompleted=false at any time; the game service's create paths
// enforce this.
type GameSession struct {
	ID                  string     `json:"id" gorm:"primaryKey"`
	DeviceID            string     `json:"device_id" gorm:"index;not null"`
	TargetPokedexNumber int        `json:"target_pokedex_number" gorm:"not null"`
	Generation          int        `json:"generation" gorm:"not null"`
	IsCompleted         bool       `json:"is_completed" gorm:"index;not null;default:false"`
	IsWon               bool       `json:"is_won" gorm:"not null;default:false"`
	IsAbandoned         bool       `json:"is_abandoned" gorm:"not null;default:false"`
	GuessesCount        int        `json:"guesses_count" gorm:"not null;default:0"`
	MaxGuesses          int        `json:"max_guesses" gorm:"not null;default:6"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	CompletedAt         *time.Time `json:"completed_at"`

	Guesses []Guess `json:"-" gorm:"foreignKey:GameSessionID;constraint:OnDelete:CASCADE"`
}

func (s *GameSession) Status() string {
	switch {
	case s.IsWon:
		return shared.GameStatusWon
	case s.IsCompleted:
		return shared.GameStatusLost
	default:
		return shared.GameStatusActive
	}
}

func (s *GameSession) GuessesRemaining() int {
	return s.MaxGuesses - s.GuessesCount
}

// CompletionRate reports guesses used as a percentage of the allowance.
func (s *GameSession) CompletionRate() float64 {
	if s.MaxGuesses == 0 {
		return 0
	}
	return float64(s.GuessesCount) / float64(s.MaxGuesses) * 100
}

// Guess is one append-only ledger row. GuessNumber is 1-based and assigned
// at creation; the composite unique index rejects guessing the same pokemon
// twice within a session.
type Guess struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	GameSessionID string    `json:"game_session_id" gorm:"not null;uniqueIndex:idx_session_pokemon"`
	PokedexNumber int       `json:"pokedex_number" gorm:"not null;uniqueIndex:idx_session_pokemon"`
	GuessNumber   int       `json:"guess_number" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

package repositories

import (
	"github.com/google/uuid"
	"github.com/pokedle-game/pokedle_api/model"
	"gorm.io/gorm"
)

// GuessRepository handles the append-only guess ledger. Rows are created
// through Append only and never updated or deleted.
type GuessRepository struct {
	BaseRepository
}

func NewGuessRepository(db *gorm.DB) *GuessRepository {
	return &GuessRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (gr *GuessRepository) Exists(sessionID string, dexNumber int) (bool, error) {
	var count int64
	if err := gr.db.Model(&model.Guess{}).
		Where("game_session_id = ? AND pokedex_number = ?", sessionID, dexNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (gr *GuessRepository) Append(tx *gorm.DB, guess *model.Guess) (*model.Guess, error) {
	if tx == nil {
		tx = gr.db
	}
	id, _ := uuid.NewV7()
	guess.ID = id.String()
	if err := tx.Create(guess).Error; err != nil {
		return nil, err
	}
	return guess, nil
}

func (gr *GuessRepository) ListBySession(sessionID string) ([]model.Guess, error) {
	var guesses []model.Guess
	if err := gr.db.Where("game_session_id = ?", sessionID).
		Order("guess_number ASC").
		Find(&guesses).Error; err != nil {
		return nil, err
	}
	return guesses, nil
}

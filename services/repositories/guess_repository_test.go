package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pokedle-game/pokedle_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func newTestSession(t *testing.T, db *gorm.DB) *model.GameSession {
	t.Helper()

	session, err := NewSessionRepository(db).CreateSession(&model.GameSession{
		DeviceID:            "device-repo-test",
		TargetPokedexNumber: 25,
		Generation:          1,
		MaxGuesses:          6,
	})
	require.NoError(t, err)
	return session
}

func TestGuessRepositoryRejectsDuplicatePokemon(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuessRepository(db)
	session := newTestSession(t, db)

	_, err := repo.Append(nil, &model.Guess{
		GameSessionID: session.ID,
		PokedexNumber: 26,
		GuessNumber:   1,
	})
	require.NoError(t, err)

	// Same pokemon in the same session trips the composite unique index.
	_, err = repo.Append(nil, &model.Guess{
		GameSessionID: session.ID,
		PokedexNumber: 26,
		GuessNumber:   2,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")

	// The same pokemon in another session is fine.
	other := NewGuessRepository(db)
	second := newTestSession(t, db)
	_, err = other.Append(nil, &model.Guess{
		GameSessionID: second.ID,
		PokedexNumber: 26,
		GuessNumber:   1,
	})
	assert.NoError(t, err)
}

func TestGuessRepositoryListsInGuessOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewGuessRepository(db)
	session := newTestSession(t, db)

	// Insert out of order; the reader sorts by guess number.
	for _, n := range []int{3, 1, 2} {
		_, err := repo.Append(nil, &model.Guess{
			GameSessionID: session.ID,
			PokedexNumber: 100 + n,
			GuessNumber:   n,
		})
		require.NoError(t, err)
	}

	ledger, err := repo.ListBySession(session.ID)
	require.NoError(t, err)
	require.Len(t, ledger, 3)
	for i, g := range ledger {
		assert.Equal(t, i+1, g.GuessNumber)
	}

	exists, err := repo.Exists(session.ID, 101)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(session.ID, 999)
	require.NoError(t, err)
	assert.False(t, exists)
}

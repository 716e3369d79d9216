package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testDevice = "device-test-1"

func TestGetOrCreateSessionReturnsExistingActive(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu(), raichu())

	first, err := gameSvc.GetOrCreateSession(testDevice)
	require.NoError(t, err)
	require.Equal(t, shared.GameStatusActive, first.Status())

	second, err := gameSvc.GetOrCreateSession(testDevice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TargetPokedexNumber, second.TargetPokedexNumber)
}

func TestSubmitGuessFirstAttemptWin(t *testing.T) {
	// Single-entry catalog pins the random target.
	gameSvc, _, _ := newGameTestEnv(t, pikachu())

	resp, err := gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)

	assert.True(t, resp.IsCorrect)
	assert.True(t, resp.GameOver)
	assert.Equal(t, 5, resp.GuessesRemaining)
	assert.Nil(t, resp.TargetPokemon, "winning already names the target in the result")
	assert.Nil(t, resp.TargetImage)

	_, err = gameSvc.sessionRepo.GetActiveByDeviceID(testDevice)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "no active session should remain")
}

func TestSubmitGuessEvaluatesAttributes(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu(), raichu())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	resp, err := gameSvc.SubmitGuess(testDevice, "Raichu")
	require.NoError(t, err)

	assert.False(t, resp.IsCorrect)
	assert.False(t, resp.GameOver)
	assert.Equal(t, 5, resp.GuessesRemaining)
	assert.Equal(t, shared.OutcomeHigh, resp.Result.PokedexNumber.Status)
	assert.Equal(t, shared.OutcomeCorrect, resp.Result.Type1.Status)
	assert.Equal(t, shared.OutcomeCorrect, resp.Result.Type2.Status)
	assert.Equal(t, shared.OutcomeHigh, resp.Result.Height.Status)
	assert.Equal(t, shared.OutcomeHigh, resp.Result.Weight.Status)
	assert.Equal(t, shared.OutcomeHigh, resp.Result.BaseStatTotal.Status)
	assert.Equal(t, shared.OutcomeCorrect, resp.Result.IsLegendary.Status)
	assert.Equal(t, shared.OutcomeCorrect, resp.Result.Color.Status)
	assert.Equal(t, shared.OutcomeCorrect, resp.Result.Habitat.Status)
}

func TestSubmitGuessLookupIsCaseInsensitive(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	resp, err := gameSvc.SubmitGuess(testDevice, "  pIkAcHu  ")
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
}

func TestSubmitGuessUnknownPokemonRejected(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	_, err := gameSvc.SubmitGuess(testDevice, "Missingno")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode)

	session, err := gameSvc.GetOrCreateSession(testDevice)
	require.NoError(t, err)
	assert.Equal(t, 0, session.GuessesCount, "rejection must not mutate state")
}

func TestSubmitGuessDuplicateRejected(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu(), raichu(), bulbasaur())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	_, err := gameSvc.SubmitGuess(testDevice, "Raichu")
	require.NoError(t, err)

	_, err = gameSvc.SubmitGuess(testDevice, "raichu")
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.StatusCode)

	session, err := gameSvc.GetOrCreateSession(testDevice)
	require.NoError(t, err)
	assert.Equal(t, 1, session.GuessesCount, "duplicate must leave the count unchanged")
}

func TestSubmitGuessSixthWrongGuessLosesAndRevealsTarget(t *testing.T) {
	catalog := []model.Pokemon{pikachu()}
	for i := 0; i < 6; i++ {
		catalog = append(catalog, filler(100+i))
	}
	gameSvc, _, _ := newGameTestEnv(t, catalog...)
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	for i := 0; i < 6; i++ {
		resp, err := gameSvc.SubmitGuess(testDevice, fmt.Sprintf("Filler%d", 100+i))
		require.NoError(t, err)

		if i < 5 {
			assert.False(t, resp.GameOver)
			assert.Equal(t, 5-i, resp.GuessesRemaining)
			assert.Nil(t, resp.TargetPokemon)
			continue
		}

		assert.True(t, resp.GameOver)
		assert.False(t, resp.IsCorrect)
		assert.Equal(t, 0, resp.GuessesRemaining)
		require.NotNil(t, resp.TargetPokemon, "a loss must reveal the target")
		assert.Equal(t, "Pikachu", *resp.TargetPokemon)
		require.NotNil(t, resp.TargetImage)
		assert.Equal(t, "https://img.example/pikachu.png", *resp.TargetImage)
	}
}

func TestSubmitGuessAfterCompletionStartsFreshGame(t *testing.T) {
	gameSvc, _, db := newGameTestEnv(t, pikachu())
	won := createSessionWithTarget(t, gameSvc, testDevice, 25)

	_, err := gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)

	// Only active sessions resolve; guessing again silently begins a new
	// game and evaluates against its target.
	resp, err := gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)
	assert.True(t, resp.IsCorrect)
	assert.Equal(t, 5, resp.GuessesRemaining)

	// The won session is untouched and terminal.
	var stored model.GameSession
	require.NoError(t, db.First(&stored, "id = ?", won.ID).Error)
	assert.True(t, stored.IsWon)
	assert.True(t, stored.IsCompleted)
	assert.NotNil(t, stored.CompletedAt)
	assert.Equal(t, 1, stored.GuessesCount)
	assert.Equal(t, shared.GameStatusWon, stored.Status())

	var total int64
	require.NoError(t, db.Model(&model.GameSession{}).
		Where("device_id = ?", testDevice).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestStartNewGameAbandonsActiveSession(t *testing.T) {
	gameSvc, _, db := newGameTestEnv(t, pikachu())

	first, err := gameSvc.GetOrCreateSession(testDevice)
	require.NoError(t, err)

	fresh, err := gameSvc.StartNewGame(testDevice)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, fresh.ID)

	var abandoned model.GameSession
	require.NoError(t, db.First(&abandoned, "id = ?", first.ID).Error)
	assert.True(t, abandoned.IsCompleted)
	assert.True(t, abandoned.IsAbandoned)
	assert.False(t, abandoned.IsWon)

	// Exactly one active session per device.
	var activeCount int64
	require.NoError(t, db.Model(&model.GameSession{}).
		Where("device_id = ? AND is_completed = ?", testDevice, false).
		Count(&activeCount).Error)
	assert.EqualValues(t, 1, activeCount)
}

func TestStartNewGameWithoutActiveSession(t *testing.T) {
	gameSvc, _, db := newGameTestEnv(t, pikachu())

	fresh, err := gameSvc.StartNewGame(testDevice)
	require.NoError(t, err)
	assert.Equal(t, shared.GameStatusActive, fresh.Status())

	var total int64
	require.NoError(t, db.Model(&model.GameSession{}).
		Where("device_id = ?", testDevice).Count(&total).Error)
	assert.EqualValues(t, 1, total, "nothing to abandon, one session created")
}

func TestGetGameStateReplaysLedger(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu(), raichu(), bulbasaur())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	first, err := gameSvc.SubmitGuess(testDevice, "Bulbasaur")
	require.NoError(t, err)
	second, err := gameSvc.SubmitGuess(testDevice, "Raichu")
	require.NoError(t, err)

	state, err := gameSvc.GetGameState(testDevice)
	require.NoError(t, err)

	require.Len(t, state.Guesses, 2)
	assert.Equal(t, first.Result, state.Guesses[0], "replay must match the original evaluation")
	assert.Equal(t, second.Result, state.Guesses[1])
	assert.Equal(t, 4, state.GuessesRemaining)
	assert.False(t, state.IsCompleted)
	assert.Nil(t, state.TargetPokemon, "in-progress games never reveal the target")
	assert.InDelta(t, 100.0*2/6, state.CompletionRate, 0.001)

	// Idempotent: replaying again changes nothing.
	again, err := gameSvc.GetGameState(testDevice)
	require.NoError(t, err)
	assert.Equal(t, state, again)
}

func TestGetGameStateAfterCompletionIsFresh(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu())
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	_, err := gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)

	// The won session no longer resolves; the state call provisions a new
	// game with an empty ledger.
	state, err := gameSvc.GetGameState(testDevice)
	require.NoError(t, err)
	assert.Empty(t, state.Guesses)
	assert.False(t, state.IsCompleted)
	assert.False(t, state.IsWon)
	assert.Equal(t, 6, state.GuessesRemaining)
	assert.Nil(t, state.TargetPokemon)
}

func TestSessionStats(t *testing.T) {
	gameSvc, _, _ := newGameTestEnv(t, pikachu())

	// No sessions yet: zeroes, not an error.
	stats, err := gameSvc.GetSessionStats(testDevice)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, 0.0, stats.WinRate)

	// Win a game, start a new one, then abandon it by starting another.
	_, err = gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)
	_, err = gameSvc.StartNewGame(testDevice)
	require.NoError(t, err)
	_, err = gameSvc.StartNewGame(testDevice)
	require.NoError(t, err)

	stats, err = gameSvc.GetSessionStats(testDevice)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalGames)
	assert.Equal(t, 1, stats.CompletedGames, "abandoned games stay out of the completed count")
	assert.Equal(t, 1, stats.WonGames)
	assert.Equal(t, 1, stats.ActiveGames)
	assert.Equal(t, 100.0, stats.WinRate)
}

func TestSessionStatsWinRateRounding(t *testing.T) {
	catalog := []model.Pokemon{pikachu()}
	for i := 0; i < 6; i++ {
		catalog = append(catalog, filler(200+i))
	}
	gameSvc, _, _ := newGameTestEnv(t, catalog...)

	// One win and two losses: 1/3 completed rounds to 33.3.
	createSessionWithTarget(t, gameSvc, testDevice, 25)
	_, err := gameSvc.SubmitGuess(testDevice, "Pikachu")
	require.NoError(t, err)

	for game := 0; game < 2; game++ {
		createSessionWithTarget(t, gameSvc, testDevice, 25)
		for i := 0; i < 6; i++ {
			_, err := gameSvc.SubmitGuess(testDevice, fmt.Sprintf("Filler%d", 200+i))
			require.NoError(t, err)
		}
	}

	stats, err := gameSvc.GetSessionStats(testDevice)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CompletedGames)
	assert.Equal(t, 1, stats.WonGames)
	assert.Equal(t, 33.3, stats.WinRate)
}

func TestConcurrentGuessesStaySerialized(t *testing.T) {
	catalog := []model.Pokemon{pikachu()}
	for i := 0; i < 10; i++ {
		catalog = append(catalog, filler(100+i))
	}
	gameSvc, _, db := newGameTestEnv(t, catalog...)
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = gameSvc.SubmitGuess(testDevice, fmt.Sprintf("Filler%d", 100+n))
		}(i)
	}
	wg.Wait()

	var sessions []model.GameSession
	require.NoError(t, db.Where("device_id = ?", testDevice).Find(&sessions).Error)

	for _, session := range sessions {
		assert.LessOrEqual(t, session.GuessesCount, session.MaxGuesses,
			"guess count must never exceed the allowance")

		var ledger []model.Guess
		require.NoError(t, db.Where("game_session_id = ?", session.ID).
			Order("guess_number ASC").Find(&ledger).Error)
		assert.Equal(t, session.GuessesCount, len(ledger))
		for i, g := range ledger {
			assert.Equal(t, i+1, g.GuessNumber, "sequence numbers must be dense and 1-based")
		}
	}
}

func TestGetGameStateSnapshotIsConsistent(t *testing.T) {
	catalog := []model.Pokemon{pikachu()}
	for i := 0; i < 5; i++ {
		catalog = append(catalog, filler(100+i))
	}
	gameSvc, _, _ := newGameTestEnv(t, catalog...)
	createSessionWithTarget(t, gameSvc, testDevice, 25)

	// Five wrong guesses keep the session active throughout, so every state
	// read resolves the same game while the writer is appending.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			_, _ = gameSvc.SubmitGuess(testDevice, fmt.Sprintf("Filler%d", 100+i))
		}
	}()

	for {
		state, err := gameSvc.GetGameState(testDevice)
		require.NoError(t, err)
		assert.Equal(t, 6-len(state.Guesses), state.GuessesRemaining,
			"ledger length and remaining count must come from one snapshot")

		select {
		case <-done:
			state, err := gameSvc.GetGameState(testDevice)
			require.NoError(t, err)
			assert.Len(t, state.Guesses, 5)
			assert.Equal(t, 1, state.GuessesRemaining)
			return
		default:
		}
	}
}

// createSessionWithTarget bypasses random selection to pin the target. Only
// valid when the device has no active session.
func createSessionWithTarget(t *testing.T, gameSvc *GameService, deviceID string, targetDex int) *model.GameSession {
	t.Helper()

	session := &model.GameSession{
		DeviceID:            deviceID,
		TargetPokedexNumber: targetDex,
		Generation:          1,
		MaxGuesses:          gameSvc.maxGuesses,
	}
	session, err := gameSvc.sessionRepo.CreateSession(session)
	require.NoError(t, err)
	return session
}

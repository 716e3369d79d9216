package services

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"sync"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/pokedle-game/pokedle_api/dto"
	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/services/repositories"
	"github.com/pokedle-game/pokedle_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameService owns the session lifecycle: target selection, the guess
// pipeline, termination and per-device stats. All read-modify-write paths
// for one device are serialized behind a keyed mutex; cross-device calls
// run in parallel.
type GameService struct {
	appContext.DefaultService

	sqlSvc     *SqlService
	pokedexSvc *PokedexService

	sessionRepo *repositories.SessionRepository
	guessRepo   *repositories.GuessRepository

	maxGuesses int

	deviceLocks sync.Map
}

const GAME_SVC = "game_svc"

func (svc GameService) Id() string {
	return GAME_SVC
}

func (svc *GameService) Configure(ctx *appContext.Context) error {
	svc.maxGuesses = 6
	if raw := os.Getenv("GAME_MAX_GUESSES"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			svc.maxGuesses = n
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *GameService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.pokedexSvc = svc.Service(POKEDEX_SVC).(*PokedexService)

	svc.sessionRepo = repositories.NewSessionRepository(svc.sqlSvc.Db())
	svc.guessRepo = repositories.NewGuessRepository(svc.sqlSvc.Db())
	return nil
}

// lockDevice serializes all session mutations for one device. Guards the
// duplicate-guess and guess-count checks against stale concurrent reads.
func (svc *GameService) lockDevice(deviceID string) func() {
	v, _ := svc.deviceLocks.LoadOrStore(deviceID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetOrCreateSession returns the device's active session, creating one with
// a random target when none exists. Completed sessions are never resolved
// here; finishing a game means the next call starts a fresh one.
func (svc *GameService) GetOrCreateSession(deviceID string) (*model.GameSession, error) {
	unlock := svc.lockDevice(deviceID)
	defer unlock()

	return svc.getOrCreateSessionLocked(deviceID)
}

func (svc *GameService) getOrCreateSessionLocked(deviceID string) (*model.GameSession, error) {
	session, err := svc.sessionRepo.GetActiveByDeviceID(deviceID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.createSessionLocked(deviceID)
}

func (svc *GameService) createSessionLocked(deviceID string) (*model.GameSession, error) {
	generation := svc.pokedexSvc.DefaultGeneration()

	target, err := svc.pokedexSvc.Random(generation)
	if err != nil {
		return nil, err
	}

	session := &model.GameSession{
		DeviceID:            deviceID,
		TargetPokedexNumber: target.PokedexNumber,
		Generation:          generation,
		MaxGuesses:          svc.maxGuesses,
	}

	session, err = svc.sessionRepo.CreateSession(session)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	RecordGameStarted()
	log.WithFields(log.Fields{
		"session_id": session.ID,
		"device_id":  deviceID,
		"generation": generation,
	}).Info("New game session created")

	return session, nil
}

// StartNewGame abandons any active session for the device and starts a
// fresh one. The abandoned game is closed without being scored as a loss.
func (svc *GameService) StartNewGame(deviceID string) (*model.GameSession, error) {
	unlock := svc.lockDevice(deviceID)
	defer unlock()

	if _, err := svc.sessionRepo.GetActiveByDeviceID(deviceID); err == nil {
		if err := svc.sessionRepo.AbandonActive(deviceID); err != nil {
			return nil, svc.sqlSvc.HandleError(err)
		}
		RecordGameAbandoned()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	return svc.createSessionLocked(deviceID)
}

// SubmitGuess runs the full guess pipeline. Every rejection happens before
// any mutation; the count increment, ledger append and status change commit
// in one transaction.
func (svc *GameService) SubmitGuess(deviceID, pokemonName string) (*dto.GuessResponse, error) {
	unlock := svc.lockDevice(deviceID)
	defer unlock()

	session, err := svc.getOrCreateSessionLocked(deviceID)
	if err != nil {
		return nil, err
	}

	// Both guards are unreachable while get-or-create only resolves active
	// sessions; kept so a broken resolver can never mutate a finished game.
	if session.IsCompleted {
		return nil, shared.NewBadRequestError(
			fmt.Errorf("session %s already completed", session.ID),
			"Game already completed",
		)
	}

	if session.GuessesCount >= session.MaxGuesses {
		return nil, shared.NewBadRequestError(
			fmt.Errorf("session %s exhausted %d guesses", session.ID, session.MaxGuesses),
			"Max guesses reached",
		)
	}

	guessed, err := svc.pokedexSvc.LookupByName(pokemonName, session.Generation)
	if err != nil {
		return nil, err
	}

	already, err := svc.guessRepo.Exists(session.ID, guessed.PokedexNumber)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}
	if already {
		return nil, shared.NewConflictError(
			fmt.Errorf("pokemon #%d already guessed in session %s", guessed.PokedexNumber, session.ID),
			"Pokemon already guessed",
		)
	}

	target, err := svc.pokedexSvc.GetByDexNumber(session.TargetPokedexNumber)
	if err != nil {
		return nil, shared.NewInternalError(err, "Target missing from pokedex")
	}

	result := ComparePokemon(guessed, target)
	isCorrect := guessed.PokedexNumber == target.PokedexNumber

	session.GuessesCount++
	if isCorrect {
		now := time.Now()
		session.IsWon = true
		session.IsCompleted = true
		session.CompletedAt = &now
	} else if session.GuessesCount >= session.MaxGuesses {
		now := time.Now()
		session.IsCompleted = true
		session.CompletedAt = &now
	}

	err = svc.sqlSvc.Db().Transaction(func(tx *gorm.DB) error {
		if _, err := svc.guessRepo.Append(tx, &model.Guess{
			GameSessionID: session.ID,
			PokedexNumber: guessed.PokedexNumber,
			GuessNumber:   session.GuessesCount,
		}); err != nil {
			return err
		}
		return svc.sessionRepo.UpdateSession(tx, session)
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	RecordGuess()
	if session.IsCompleted {
		if isCorrect {
			RecordGameWon()
		} else {
			RecordGameLost()
		}
	}

	resp := &dto.GuessResponse{
		Result:           result,
		IsCorrect:        isCorrect,
		GameOver:         session.IsCompleted,
		GuessesRemaining: session.GuessesRemaining(),
	}

	// The target is revealed only when this guess just lost the game.
	if session.IsCompleted && !isCorrect {
		name := target.Name
		image := target.DisplayImage()
		resp.TargetPokemon = &name
		resp.TargetImage = &image
	}

	return resp, nil
}

// GetGameState rebuilds the full view of the current session by replaying
// the guess ledger through the comparator. Idempotent; mutates nothing
// beyond possibly creating the session itself. The device lock spans the
// session and ledger reads so the snapshot is internally consistent.
func (svc *GameService) GetGameState(deviceID string) (*dto.GameStateResponse, error) {
	unlock := svc.lockDevice(deviceID)
	defer unlock()

	session, err := svc.getOrCreateSessionLocked(deviceID)
	if err != nil {
		return nil, err
	}

	target, err := svc.pokedexSvc.GetByDexNumber(session.TargetPokedexNumber)
	if err != nil {
		return nil, shared.NewInternalError(err, "Target missing from pokedex")
	}

	ledger, err := svc.guessRepo.ListBySession(session.ID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	results := make([]dto.GuessResult, 0, len(ledger))
	for _, entry := range ledger {
		guessed, err := svc.pokedexSvc.GetByDexNumber(entry.PokedexNumber)
		if err != nil {
			return nil, shared.NewInternalError(err, "Guessed pokemon missing from pokedex")
		}
		results = append(results, ComparePokemon(guessed, target))
	}

	resp := &dto.GameStateResponse{
		Guesses:          results,
		GuessesRemaining: session.GuessesRemaining(),
		IsCompleted:      session.IsCompleted,
		IsWon:            session.IsWon,
		CompletionRate:   session.CompletionRate(),
	}

	if session.IsCompleted {
		name := target.Name
		image := target.DisplayImage()
		resp.TargetPokemon = &name
		resp.TargetImage = &image
	}

	return resp, nil
}

// GetSessionStats aggregates the device's history. A device with no
// sessions gets zeroes, not an error.
func (svc *GameService) GetSessionStats(deviceID string) (*dto.SessionStatsResponse, error) {
	counts, err := svc.sessionRepo.CountByDeviceID(deviceID)
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	var winRate float64
	if counts.Completed > 0 {
		winRate = float64(counts.Won) / float64(counts.Completed) * 100
		winRate = math.Round(winRate*10) / 10
	}

	return &dto.SessionStatsResponse{
		TotalGames:     int(counts.Total),
		CompletedGames: int(counts.Completed),
		WonGames:       int(counts.Won),
		ActiveGames:    int(counts.Active),
		WinRate:        winRate,
	}, nil
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pokedle-game/pokedle_api/dto"
	"github.com/pokedle-game/pokedle_api/shared"
)

type GameHandler struct {
	gameSvc GameServiceInterface
}

func NewGameHandler(gameSvc GameServiceInterface) *GameHandler {
	return &GameHandler{
		gameSvc: gameSvc,
	}
}

// deviceID resolves the opaque player identity from the request. The core
// never derives it; callers must send it.
func deviceID(c *fiber.Ctx) (string, error) {
	id := c.Get(shared.HeaderDeviceID)
	if id == "" {
		return "", shared.NewBadRequestError(
			errors.New("missing "+shared.HeaderDeviceID+" header"),
			"Device ID required",
		)
	}
	return id, nil
}

// @Summary Start New Game
// @Description Abandons any active game for the device and starts a fresh one
// @Tags game
// @Accept  json
// @Produce json
// @Param X-Device-ID header string true "Device ID"
// @Success 200
// @Router /api/v1/game/new [post]
func (h *GameHandler) NewGame(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	if _, err := h.gameSvc.StartNewGame(id); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "New game started!", nil)
}

// @Summary Submit Guess
// @Description Evaluates a pokemon name against the hidden target
// @Tags game
// @Accept  json
// @Produce json
// @Param X-Device-ID header string true "Device ID"
// @Param guessRequest body dto.GuessRequest true "Guess request"
// @Success 200 {object} shared.Response{data=dto.GuessResponse}
// @Router /api/v1/game/guess [post]
func (h *GameHandler) SubmitGuess(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	var req dto.GuessRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.gameSvc.SubmitGuess(id, req.PokemonName)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get Game State
// @Description Replays the guess ledger to rebuild the current game view
// @Tags game
// @Accept  json
// @Produce json
// @Param X-Device-ID header string true "Device ID"
// @Success 200 {object} shared.Response{data=dto.GameStateResponse}
// @Router /api/v1/game/state [get]
func (h *GameHandler) GetGameState(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	state, err := h.gameSvc.GetGameState(id)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, state)
}

// @Summary Get Session Stats
// @Description Aggregate win/loss counts for the device across all its games
// @Tags game
// @Accept  json
// @Produce json
// @Param X-Device-ID header string true "Device ID"
// @Success 200 {object} shared.Response{data=dto.SessionStatsResponse}
// @Router /api/v1/game/stats [get]
func (h *GameHandler) GetSessionStats(c *fiber.Ctx) error {
	id, err := deviceID(c)
	if err != nil {
		return err
	}

	stats, err := h.gameSvc.GetSessionStats(id)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, stats)
}

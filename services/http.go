package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/pokedle-game/pokedle_api/services/handlers"
	"github.com/pokedle-game/pokedle_api/shared"
)

type HttpService struct {
	context.DefaultService

	gameSvc       *GameService
	pokedexSvc    *PokedexService
	rateLimitSvc  *RateLimitService
	monitoringSvc *MonitoringService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.gameSvc = svc.Service(GAME_SVC).(*GameService)
	svc.pokedexSvc = svc.Service(POKEDEX_SVC).(*PokedexService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)

	svc.app = fiber.New(fiber.Config{
		AppName:               "pokedle_api",
		DisableStartupMessage: os.Getenv("LOG_LEVEL") == "INFO",
		JSONEncoder:           shared.JSONMarshal,
		JSONDecoder:           shared.JSONUnmarshal,
		ErrorHandler:          svc.handleError,
	})

	svc.app.Use(recover.New())
	svc.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + shared.HeaderDeviceID,
	}))
	svc.app.Use(svc.monitoringSvc.RequestMetrics())

	svc.app.Get("/ping", svc.ping)

	gameHandler := handlers.NewGameHandler(svc.gameSvc)
	pokedexHandler := handlers.NewPokedexHandler(svc.pokedexSvc)

	v1 := svc.app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Get("/pokemon", pokedexHandler.ListPokemon)
	v1.Get("/pokemon/:dexNumber", pokedexHandler.GetPokemonDetails)

	game := v1.Group("/game")
	game.Post("/new", svc.rateLimitSvc.Handle("new_game"), gameHandler.NewGame)
	game.Post("/guess", svc.rateLimitSvc.Handle("guess"), gameHandler.SubmitGuess)
	game.Get("/state", gameHandler.GetGameState)
	game.Get("/stats", gameHandler.GetSessionStats)

	svc.app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	log.Info().Int("port", svc.port).Msg("http server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return shared.ResponseInternalError(c, err)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pokedle-game/pokedle_api/shared"
)

type PokedexHandler struct {
	pokedexSvc PokedexServiceInterface
}

func NewPokedexHandler(pokedexSvc PokedexServiceInterface) *PokedexHandler {
	return &PokedexHandler{
		pokedexSvc: pokedexSvc,
	}
}

// @Summary List Pokemon
// @Description Names and images for the autocomplete, scoped to a generation
// @Tags pokedex
// @Accept  json
// @Produce json
// @Param generation query int false "Generation scope (defaults to the configured one)"
// @Success 200 {object} shared.Response{data=dto.PokemonListResponse}
// @Router /api/v1/pokemon [get]
func (h *PokedexHandler) ListPokemon(c *fiber.Ctx) error {
	generation := c.QueryInt("generation", h.pokedexSvc.DefaultGeneration())

	list, err := h.pokedexSvc.List(generation)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, list)
}

// @Summary Get Pokemon Details
// @Description Full catalog record for one pokedex number
// @Tags pokedex
// @Accept  json
// @Produce json
// @Param dexNumber path int true "Pokedex number"
// @Success 200 {object} shared.Response{data=dto.PokemonDetailsResponse}
// @Router /api/v1/pokemon/{dexNumber} [get]
func (h *PokedexHandler) GetPokemonDetails(c *fiber.Ctx) error {
	dexNumber, err := c.ParamsInt("dexNumber")
	if err != nil {
		return shared.NewBadRequestError(err, "Invalid pokedex number")
	}

	details, err := h.pokedexSvc.Details(dexNumber)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, details)
}

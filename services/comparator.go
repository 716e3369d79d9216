package services

import (
	"github.com/pokedle-game/pokedle_api/dto"
	"github.com/pokedle-game/pokedle_api/model"
	"github.com/pokedle-game/pokedle_api/shared"
)

// ComparePokemon scores a guess against the hidden target, one outcome per
// attribute. It is pure: fresh guesses and ledger replays both go through
// here, so the same pair always produces the same result.
func ComparePokemon(guess, target *model.Pokemon) dto.GuessResult {
	return dto.GuessResult{
		PokemonName:  guess.Name,
		ImageURL:     guess.ImageURL,
		SpriteURL:    guess.SpriteURL,
		DisplayImage: guess.DisplayImage(),

		PokedexNumber: dto.AttributeResult{
			Value:  guess.PokedexNumber,
			Status: compareInt(guess.PokedexNumber, target.PokedexNumber),
		},
		Type1: dto.AttributeResult{
			Value:  guess.Type1,
			Status: compareCategorical(guess.Type1, target.Type1),
		},
		Type2: dto.AttributeResult{
			Value:  displayOr(guess.Type2, shared.DisplayNoType),
			Status: compareNullable(guess.Type2, target.Type2),
		},
		Height: dto.AttributeResult{
			Value:  guess.Height,
			Status: compareFloat(guess.Height, target.Height),
		},
		Weight: dto.AttributeResult{
			Value:  guess.Weight,
			Status: compareFloat(guess.Weight, target.Weight),
		},
		BaseStatTotal: dto.AttributeResult{
			Value:  guess.BaseStatTotal,
			Status: compareInt(guess.BaseStatTotal, target.BaseStatTotal),
		},
		IsLegendary: dto.AttributeResult{
			Value:  guess.IsLegendary,
			Status: compareBool(guess.IsLegendary, target.IsLegendary),
		},
		Color: dto.AttributeResult{
			Value:  guess.Color,
			Status: compareCategorical(guess.Color, target.Color),
		},
		Habitat: dto.AttributeResult{
			Value:  displayOr(guess.Habitat, shared.DisplayNoHabitat),
			Status: compareNullable(guess.Habitat, target.Habitat),
		},
	}
}

func compareCategorical(guessVal, targetVal string) string {
	if guessVal == targetVal {
		return shared.OutcomeCorrect
	}
	return shared.OutcomeIncorrect
}

// compareNullable treats a missing value as its own comparable value: two
// nils match, nil against anything else does not. No partial credit for a
// type overlap on the other slot.
func compareNullable(guessVal, targetVal *string) string {
	if guessVal == nil && targetVal == nil {
		return shared.OutcomeCorrect
	}
	if guessVal == nil || targetVal == nil {
		return shared.OutcomeIncorrect
	}
	return compareCategorical(*guessVal, *targetVal)
}

func compareBool(guessVal, targetVal bool) string {
	if guessVal == targetVal {
		return shared.OutcomeCorrect
	}
	return shared.OutcomeIncorrect
}

// Ordered attributes report "low" when the guess is below the target,
// telling the player to search higher.
func compareInt(guessVal, targetVal int) string {
	switch {
	case guessVal == targetVal:
		return shared.OutcomeCorrect
	case guessVal < targetVal:
		return shared.OutcomeLow
	default:
		return shared.OutcomeHigh
	}
}

func compareFloat(guessVal, targetVal float64) string {
	switch {
	case guessVal == targetVal:
		return shared.OutcomeCorrect
	case guessVal < targetVal:
		return shared.OutcomeLow
	default:
		return shared.OutcomeHigh
	}
}

func displayOr(val *string, fallback string) string {
	if val == nil || *val == "" {
		return fallback
	}
	return *val
}

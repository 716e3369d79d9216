package dto

type GuessRequest struct {
	PokemonName string `json:"pokemon_name" validate:"required,min=1,max=100"`
}

func (r GuessRequest) Validate() error {
	return GetValidator().Struct(r)
}

// AttributeResult is one attribute of a guess scored against the target:
// the guessed value plus an outcome status (correct/incorrect/low/high).
type AttributeResult struct {
	Value  interface{} `json:"value"`
	Status string      `json:"status"`
}

// GuessResult is the full per-attribute scoring of a single guess.
type GuessResult struct {
	PokemonName  string `json:"pokemon_name"`
	ImageURL     string `json:"image_url"`
	SpriteURL    string `json:"sprite_url"`
	DisplayImage string `json:"display_image"`

	PokedexNumber AttributeResult `json:"pokedex_number"`
	Type1         AttributeResult `json:"type1"`
	Type2         AttributeResult `json:"type2"`
	Height        AttributeResult `json:"height"`
	Weight        AttributeResult `json:"weight"`
	BaseStatTotal AttributeResult `json:"base_stat_total"`
	IsLegendary   AttributeResult `json:"is_legendary"`
	Color         AttributeResult `json:"color"`
	Habitat       AttributeResult `json:"habitat"`
}

type GuessResponse struct {
	Result           GuessResult `json:"result"`
	IsCorrect        bool        `json:"is_correct"`
	GameOver         bool        `json:"game_over"`
	GuessesRemaining int         `json:"guesses_remaining"`

	// Revealed only when the guess just ended the game in a loss.
	TargetPokemon *string `json:"target_pokemon"`
	TargetImage   *string `json:"target_image"`
}

type GameStateResponse struct {
	Guesses          []GuessResult `json:"guesses"`
	GuessesRemaining int           `json:"guesses_remaining"`
	IsCompleted      bool          `json:"is_completed"`
	IsWon            bool          `json:"is_won"`
	CompletionRate   float64       `json:"completion_rate"`

	// Revealed once the session is completed, won or lost.
	TargetPokemon *string `json:"target_pokemon"`
	TargetImage   *string `json:"target_image"`
}

type SessionStatsResponse struct {
	TotalGames     int     `json:"total_games"`
	CompletedGames int     `json:"completed_games"`
	WonGames       int     `json:"won_games"`
	ActiveGames    int     `json:"active_games"`
	WinRate        float64 `json:"win_rate"`
}

package dto

// PokemonListEntry feeds the client-side autocomplete.
type PokemonListEntry struct {
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	SpriteURL string `json:"sprite_url"`
}

type PokemonListResponse struct {
	Pokemon     []string           `json:"pokemon"`
	PokemonData []PokemonListEntry `json:"pokemon_data"`
}

type PokemonDetailsResponse struct {
	Name          string  `json:"name"`
	PokedexNumber int     `json:"pokedex_number"`
	Type1         string  `json:"type1"`
	Type2         *string `json:"type2"`
	Generation    int     `json:"generation"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	BaseStatTotal int     `json:"base_stat_total"`
	IsLegendary   bool    `json:"is_legendary"`
	Color         string  `json:"color"`
	Habitat       *string `json:"habitat"`
	ImageURL      string  `json:"image_url"`
	SpriteURL     string  `json:"sprite_url"`
	DisplayImage  string  `json:"display_image"`
}

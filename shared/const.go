package shared

const (
	HeaderDeviceID = "X-Device-ID"

	OutcomeCorrect   = "correct"
	OutcomeIncorrect = "incorrect"
	OutcomeLow       = "low"
	OutcomeHigh      = "high"

	// Display sentinels for nullable attributes.
	DisplayNoType    = "None"
	DisplayNoHabitat = "Unknown"

	GameStatusActive = "active"
	GameStatusWon    = "won"
	GameStatusLost   = "lost"
)

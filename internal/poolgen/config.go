package poolgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question. The first
	// failure rejects the whole batch.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExisting caps how many existing prompts are listed in the
	// prompt for deduplication.
	MaxExisting int
}

// DefaultConfig returns a Config with the standard validator chain
// and recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators:  []Validator{&StructuralValidator{}},
		MaxTokens:   2048,
		Temperature: 0.7,
		MaxExisting: 10,
	}
}

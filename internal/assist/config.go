package assist

// Config controls generation limits of the study tools.
type Config struct {
	// QuestionCount is how many questions a quiz asks the model for.
	QuestionCount int

	// OptionCount is the number of answer choices per question.
	OptionCount int

	// MaxTokens is the token budget for a single response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the limits used by the course site.
func DefaultConfig() Config {
	return Config{
		QuestionCount: 20,
		OptionCount:   4,
		MaxTokens:     8192,
		Temperature:   0.7,
	}
}

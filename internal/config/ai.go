package config

import "os"

// AIModels defines which OpenAI models to use for different tasks
type AIModels struct {
	// SectionSelection picks the document section for the next question
	// (needs to be fast, runs on every next-question call)
	SectionSelection string `json:"sectionSelection"`

	// QuestionGeneration generates the multiple-choice question itself
	QuestionGeneration string `json:"questionGeneration"`

	// Review is for post-interview candidate review generation
	// (deep analysis, not blocking)
	Review string `json:"review"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string   `json:"-"` // Never serialize
	BaseURL   string   `json:"baseUrl"`
	Models    AIModels `json:"models"`
	TimeoutMS int      `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: getEnvOrDefault("OPENAI_BASE_URL", ""),
		Models: AIModels{
			SectionSelection:   getEnvOrDefault("OPENAI_MODEL_SECTION", "gpt-4o"),
			QuestionGeneration: getEnvOrDefault("OPENAI_MODEL_QUESTION", "gpt-4o-mini"),
			Review:             getEnvOrDefault("OPENAI_MODEL_REVIEW", "gpt-4.1"),
		},
		TimeoutMS: 30000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

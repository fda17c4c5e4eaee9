package gemini

import "time"

// Config for the Gemini client.
type Config struct {
	APIKey          string        // required; there is no implicit env fallback
	Model           string        // e.g. "gemini-1.5-flash"
	Temperature     float32       // low by default: structured output wants determinism
	MaxOutputTokens int32         // output-length ceiling
	Timeout         time.Duration // http client timeout for the single backend call
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = "gemini-1.5-flash"
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.2
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = 8192
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	return c
}

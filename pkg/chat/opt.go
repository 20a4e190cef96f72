package chat

import (
	// Packages
	meteo "github.com/abeyrathna-np/meteo"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a function which can set chat options
type Opt func(*opt) error

type opt struct {
	system      string
	temperature float64
	maxTokens   uint
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultSystemPrompt = "You are a helpful weather assistant. Use the available tools to look up weather data when a question needs it, and answer concisely in natural language."
	defaultTemperature  = 0.2
	defaultMaxTokens    = 1024
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func defaults() opt {
	return opt{
		system:      defaultSystemPrompt,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithSystemPrompt sets the system message for both provider calls
func WithSystemPrompt(prompt string) Opt {
	return func(o *opt) error {
		if prompt == "" {
			return meteo.ErrBadParameter.With("empty system prompt")
		}
		o.system = prompt
		return nil
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) Opt {
	return func(o *opt) error {
		if temperature < 0 || temperature > 2 {
			return meteo.ErrBadParameter.Withf("temperature %v out of range", temperature)
		}
		o.temperature = temperature
		return nil
	}
}

// WithMaxTokens sets the completion token limit
func WithMaxTokens(maxTokens uint) Opt {
	return func(o *opt) error {
		if maxTokens == 0 {
			return meteo.ErrBadParameter.With("max tokens must be positive")
		}
		o.maxTokens = maxTokens
		return nil
	}
}

package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "research.foundation_agents")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateLLM()...)
	errors = append(errors, c.validateResearch()...)
	errors = append(errors, c.validateWorkflow()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateLLM validates the LLMConfig
func (c *Config) validateLLM() []ValidationError {
	var errors []ValidationError

	if c.LLM.Model == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.model",
			Value:   c.LLM.Model,
			Message: "must not be empty",
		})
	}
	if c.LLM.APIKeyEnv == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.api_key_env",
			Value:   c.LLM.APIKeyEnv,
			Message: "must not be empty",
		})
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Value:   c.LLM.Temperature,
			Message: "must be between 0.0 and 2.0",
		})
	}
	if c.LLM.MaxTokens <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Value:   c.LLM.MaxTokens,
			Message: "must be positive",
		})
	}
	if c.LLM.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "llm.timeout_seconds",
			Value:   c.LLM.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateResearch validates the ResearchConfig
func (c *Config) validateResearch() []ValidationError {
	var errors []ValidationError

	counts := []struct {
		field string
		value int
	}{
		{"research.foundation_agents", c.Research.FoundationAgents},
		{"research.path_agents", c.Research.PathAgents},
		{"research.integration_agents", c.Research.IntegrationAgents},
	}
	for _, count := range counts {
		if count.value < 1 {
			errors = append(errors, ValidationError{
				Field:   count.field,
				Value:   count.value,
				Message: "must be at least 1",
			})
		}
		if count.value > 10 {
			errors = append(errors, ValidationError{
				Field:   count.field,
				Value:   count.value,
				Message: "must be at most 10",
			})
		}
	}

	if c.Research.DebateWindowSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "research.debate_window_seconds",
			Value:   c.Research.DebateWindowSeconds,
			Message: "must be positive",
		})
	}
	if c.Research.TaskTimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "research.task_timeout_seconds",
			Value:   c.Research.TaskTimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateWorkflow validates the WorkflowConfig
func (c *Config) validateWorkflow() []ValidationError {
	var errors []ValidationError

	if c.Workflow.OutputDir == "" {
		errors = append(errors, ValidationError{
			Field:   "workflow.output_dir",
			Value:   c.Workflow.OutputDir,
			Message: "must not be empty",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}

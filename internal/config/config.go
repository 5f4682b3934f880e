package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Ideaforge configuration
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Research ResearchConfig `mapstructure:"research"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LLMConfig controls the text-generation backend
type LLMConfig struct {
	// Model is the Gemini model name (default: "gemini-2.0-flash")
	Model string `mapstructure:"model"`
	// APIKeyEnv is the environment variable holding the API key (default: "GEMINI_API_KEY")
	APIKeyEnv string `mapstructure:"api_key_env"`
	// Temperature is the sampling temperature (0.0-2.0, default: 0.7)
	Temperature float64 `mapstructure:"temperature"`
	// MaxTokens limits output tokens per generation (default: 4096)
	MaxTokens int `mapstructure:"max_tokens"`
	// TimeoutSeconds bounds a single generation call (default: 120)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// APIKey reads the configured environment variable. Empty when unset.
func (c *LLMConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// Timeout returns the generation timeout as a time.Duration
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ResearchConfig controls the research fleet
type ResearchConfig struct {
	// FoundationAgents is the number of foundation agents to spawn (default: 2)
	FoundationAgents int `mapstructure:"foundation_agents"`
	// PathAgents is the number of path-exploration agents to spawn (default: 3)
	PathAgents int `mapstructure:"path_agents"`
	// IntegrationAgents is the number of integration agents to spawn (default: 2)
	IntegrationAgents int `mapstructure:"integration_agents"`
	// DebateWindowSeconds is how long a foundation debate stays open for
	// contributions before it is concluded (default: 10)
	DebateWindowSeconds int `mapstructure:"debate_window_seconds"`
	// TaskTimeoutSeconds bounds a single agent task (default: 90)
	TaskTimeoutSeconds int `mapstructure:"task_timeout_seconds"`
}

// DebateWindow returns the debate window as a time.Duration
func (c *ResearchConfig) DebateWindow() time.Duration {
	return time.Duration(c.DebateWindowSeconds) * time.Second
}

// TaskTimeout returns the per-task timeout as a time.Duration
func (c *ResearchConfig) TaskTimeout() time.Duration {
	return time.Duration(c.TaskTimeoutSeconds) * time.Second
}

// WorkflowConfig controls where drafted documents live and how they are watched
type WorkflowConfig struct {
	// BaseDir is the project directory sessions and documents are rooted
	// in, relative to the working directory unless absolute (default: ".")
	BaseDir string `mapstructure:"base_dir"`
	// OutputDir is the directory for drafted documents, relative to
	// BaseDir unless absolute (default: "output")
	OutputDir string `mapstructure:"output_dir"`
	// WatchDocuments enables the filesystem watcher that picks up manual
	// edits to drafted documents (default: true)
	WatchDocuments bool `mapstructure:"watch_documents"`
}

// ResolveBaseDir returns BaseDir resolved against the working directory
// when it is relative.
func (c *WorkflowConfig) ResolveBaseDir(workingDir string) string {
	if c.BaseDir == "" || c.BaseDir == "." {
		return workingDir
	}
	if filepath.IsAbs(c.BaseDir) {
		return c.BaseDir
	}
	return filepath.Join(workingDir, c.BaseDir)
}

// ResolveOutputDir returns the output directory resolved against baseDir
// when it is relative.
func (c *WorkflowConfig) ResolveOutputDir(baseDir string) string {
	if c.OutputDir == "" {
		return filepath.Join(baseDir, "output")
	}
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(baseDir, c.OutputDir)
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr (default: "")
	File string `mapstructure:"file"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:          "gemini-2.0-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			Temperature:    0.7,
			MaxTokens:      4096,
			TimeoutSeconds: 120,
		},
		Research: ResearchConfig{
			FoundationAgents:    2,
			PathAgents:          3,
			IntegrationAgents:   2,
			DebateWindowSeconds: 10,
			TaskTimeoutSeconds:  90,
		},
		Workflow: WorkflowConfig{
			BaseDir:        ".",
			OutputDir:      "output",
			WatchDocuments: true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
			File:    "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// LLM defaults
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.api_key_env", defaults.LLM.APIKeyEnv)
	viper.SetDefault("llm.temperature", defaults.LLM.Temperature)
	viper.SetDefault("llm.max_tokens", defaults.LLM.MaxTokens)
	viper.SetDefault("llm.timeout_seconds", defaults.LLM.TimeoutSeconds)

	// Research defaults
	viper.SetDefault("research.foundation_agents", defaults.Research.FoundationAgents)
	viper.SetDefault("research.path_agents", defaults.Research.PathAgents)
	viper.SetDefault("research.integration_agents", defaults.Research.IntegrationAgents)
	viper.SetDefault("research.debate_window_seconds", defaults.Research.DebateWindowSeconds)
	viper.SetDefault("research.task_timeout_seconds", defaults.Research.TaskTimeoutSeconds)

	// Workflow defaults
	viper.SetDefault("workflow.base_dir", defaults.Workflow.BaseDir)
	viper.SetDefault("workflow.output_dir", defaults.Workflow.OutputDir)
	viper.SetDefault("workflow.watch_documents", defaults.Workflow.WatchDocuments)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ideaforge")
	}
	// Fall back to ~/.config/ideaforge
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ideaforge"
	}
	return filepath.Join(home, ".config", "ideaforge")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

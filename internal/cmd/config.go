package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"ideaforge/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View Ideaforge configuration",
	Long: `View Ideaforge configuration.

Without arguments, displays the effective configuration.
Use subcommands to create a config file or locate it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/ideaforge/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	fmt.Println("Current configuration:")
	fmt.Println()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Config file: (none - using defaults)\n")
	}
	fmt.Println()

	fmt.Println("llm:")
	fmt.Printf("  model: %s\n", cfg.LLM.Model)
	fmt.Printf("  api_key_env: %s\n", cfg.LLM.APIKeyEnv)
	fmt.Printf("  temperature: %g\n", cfg.LLM.Temperature)
	fmt.Printf("  max_tokens: %d\n", cfg.LLM.MaxTokens)
	fmt.Printf("  timeout_seconds: %d\n", cfg.LLM.TimeoutSeconds)

	fmt.Println("research:")
	fmt.Printf("  foundation_agents: %d\n", cfg.Research.FoundationAgents)
	fmt.Printf("  path_agents: %d\n", cfg.Research.PathAgents)
	fmt.Printf("  integration_agents: %d\n", cfg.Research.IntegrationAgents)
	fmt.Printf("  debate_window_seconds: %d\n", cfg.Research.DebateWindowSeconds)
	fmt.Printf("  task_timeout_seconds: %d\n", cfg.Research.TaskTimeoutSeconds)

	fmt.Println("workflow:")
	fmt.Printf("  base_dir: %s\n", cfg.Workflow.BaseDir)
	fmt.Printf("  output_dir: %s\n", cfg.Workflow.OutputDir)
	fmt.Printf("  watch_documents: %v\n", cfg.Workflow.WatchDocuments)

	fmt.Println("logging:")
	fmt.Printf("  enabled: %v\n", cfg.Logging.Enabled)
	fmt.Printf("  level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		fmt.Printf("  file: %s\n", cfg.Logging.File)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Generate a commented config file
	configContent := `# Ideaforge Configuration

# Text-generation backend
llm:
  # Gemini model name
  model: gemini-2.0-flash
  # Environment variable holding the API key
  api_key_env: GEMINI_API_KEY
  # Sampling temperature (0.0-2.0)
  temperature: 0.7
  # Output token limit per generation
  max_tokens: 4096
  # Timeout for a single generation call in seconds
  timeout_seconds: 120

# Research fleet settings
research:
  foundation_agents: 2
  path_agents: 3
  integration_agents: 2
  # How long a foundation debate stays open for contributions, in seconds
  debate_window_seconds: 10
  # Timeout for a single agent task in seconds
  task_timeout_seconds: 90

# Drafting workflow settings
workflow:
  # Project directory sessions and documents are rooted in
  base_dir: .
  # Directory for drafted documents (relative to base_dir)
  output_dir: output
  # Pick up manual edits to drafted documents
  watch_documents: true

# Logging settings
logging:
  enabled: true
  # debug, info, warn, or error
  level: info
  # Log file path; empty logs to stderr
  file: ""
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println("Edit this file to customize Ideaforge's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Printf("Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Printf("Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Println("\nSearch paths:")
	fmt.Printf("  1. %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	fmt.Printf("  2. $HOME/.config/ideaforge/config.yaml\n")
	fmt.Printf("  3. ./config.yaml (current directory)\n")
	fmt.Println("\nEnvironment variables: IDEAFORGE_* (e.g., IDEAFORGE_LLM_MODEL)")

	return nil
}

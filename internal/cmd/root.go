// Package cmd implements the ideaforge command-line interface.
package cmd

import (
	"strings"

	"ideaforge/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "Multi-agent assistant for drafting project documentation",
	Long: `Ideaforge walks a project idea through a staged drafting workflow:
brainstorm the idea with an analyst, then draft and approve the vision,
PRD, and architecture documents, then run a fleet of research agents
that investigate foundation choices and produce a research report.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/ideaforge/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&sessionID, "session", "s", "", "session ID (default is the current session)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

// sessionID is the --session override shared by all commands.
var sessionID string

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/ideaforge")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("IDEAFORGE")
	// Replace dots with underscores for nested keys in env vars
	// e.g., IDEAFORGE_LLM_MODEL for llm.model
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage Ideaforge sessions",
	Long:  `Commands for listing, switching, and deleting Ideaforge sessions.`,
	RunE:  runSessionsList,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionsList,
}

var sessionsUseCmd = &cobra.Command{
	Use:   "use <session-id>",
	Short: "Make a session the current session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsUse,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsUseCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	infos, err := app.sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	current, _ := app.sessions.Current(ctx)

	fmt.Println(strings.Repeat("─", 70))
	fmt.Println("Ideaforge Sessions")
	fmt.Println(strings.Repeat("─", 70))

	if len(infos) == 0 {
		fmt.Println("\nNo sessions found.")
		fmt.Println("Run 'ideaforge new <project>' to create one.")
		return nil
	}

	fmt.Printf("\nFound %d session(s):\n\n", len(infos))
	for _, info := range infos {
		marker := " "
		if info.ID == current {
			marker = "*"
		}
		fmt.Printf("%s Session: %s\n", marker, info.ID)
		fmt.Printf("    Project: %s\n", info.ProjectName)
		fmt.Printf("    Stage:   %s\n", info.Stage)
		fmt.Printf("    Updated: %s\n", info.UpdatedAt.Format(time.RFC822))
		fmt.Println()
	}
	fmt.Println("To switch sessions: ideaforge sessions use <session-id>")
	return nil
}

func runSessionsUse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.sessions.SetCurrent(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Current session is now %s\n", args[0])
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	if err := app.sessions.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted session %s\n", args[0])
	return nil
}

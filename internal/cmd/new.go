package cmd

import (
	"fmt"
	"strings"

	"ideaforge/internal/workflow"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a session and start brainstorming",
	Long: `Create a new project session, make it the current session, and open
the brainstorm conversation with the project idea as the topic.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	projectName := strings.Join(args, " ")
	s, err := app.sessions.Create(ctx, projectName, workflow.StageBrainstorm.String())
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := app.sessions.SetCurrent(ctx, s.ID); err != nil {
		return fmt.Errorf("failed to set current session: %w", err)
	}

	engine, err := app.engine(ctx)
	if err != nil {
		return err
	}
	reply, err := engine.StartBrainstorm(ctx, s.ID, projectName)
	if err != nil {
		return err
	}

	fmt.Printf("Created session %s for %q\n\n", s.ID, projectName)
	fmt.Println(reply)
	fmt.Println("\nContinue with 'ideaforge say <message>', then 'ideaforge approve' to move to the vision stage.")
	return nil
}

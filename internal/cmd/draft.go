package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft the document for the current stage",
	Long: `Generate the document for the session's current stage and write it to
the output directory. The vision is drafted from the brainstorm
conversation, the PRD from the vision, and the architecture from both.`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

var reviseCmd = &cobra.Command{
	Use:   "revise <feedback>",
	Short: "Revise the current stage's document",
	Long: `Regenerate the current stage's document from reviewer feedback. The
document is re-read from disk first, so manual edits are revised too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRevise,
}

var approveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Approve the current stage and advance",
	Long: `Approve the current stage and advance the session to the next one.
Document stages require their document to be drafted first.`,
	Args: cobra.NoArgs,
	RunE: runApprove,
}

func init() {
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(reviseCmd)
	rootCmd.AddCommand(approveCmd)
}

func runDraft(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	s, err := app.session(ctx)
	if err != nil {
		return err
	}
	engine, err := app.engine(ctx)
	if err != nil {
		return err
	}

	path, err := engine.Draft(ctx, s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Drafted %s document: %s\n", s.Stage, path)
	fmt.Println("Review it, then 'ideaforge revise <feedback>' or 'ideaforge approve'.")
	return nil
}

func runRevise(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	s, err := app.session(ctx)
	if err != nil {
		return err
	}
	engine, err := app.engine(ctx)
	if err != nil {
		return err
	}

	path, err := engine.Revise(ctx, s.ID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Printf("Revised %s document: %s\n", s.Stage, path)
	return nil
}

func runApprove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	s, err := app.session(ctx)
	if err != nil {
		return err
	}

	next, err := app.offlineEngine().Approve(ctx, s.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Advanced to the %s stage.\n", next)
	return nil
}

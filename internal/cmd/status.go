package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session's workflow status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Session:  %s\n", s.ID)
	fmt.Printf("Project:  %s\n", s.ProjectName)
	fmt.Printf("Stage:    %s\n", s.Stage)
	fmt.Printf("Created:  %s\n", s.CreatedAt.Format(time.RFC822))
	fmt.Printf("Updated:  %s\n", s.UpdatedAt.Format(time.RFC822))

	if len(s.Documents) > 0 {
		fmt.Println("\nDocuments:")
		types := make([]string, 0, len(s.Documents))
		for docType := range s.Documents {
			types = append(types, docType)
		}
		sort.Strings(types)
		for _, docType := range types {
			fmt.Printf("  %-16s %s\n", docType, s.Documents[docType])
		}
	}

	if len(s.History) > 0 {
		fmt.Println("\nStage history:")
		for _, transition := range s.History {
			fmt.Printf("  %s -> %s at %s\n",
				transition.From, transition.To, transition.At.Format(time.RFC822))
		}
	}

	if s.Research != nil {
		fmt.Println("\nResearch:")
		fmt.Printf("  foundation:  %s\n", doneLabel(s.Research.FoundationDone))
		fmt.Printf("  paths:       %s\n", doneLabel(s.Research.PathsDone))
		fmt.Printf("  integration: %s\n", doneLabel(s.Research.IntegrationDone))
		fmt.Printf("  synthesis:   %s\n", doneLabel(s.Research.SynthesisDone))
		if s.Research.ReportPath != "" {
			fmt.Printf("  report:      %s\n", s.Research.ReportPath)
		}
	}

	return nil
}

func doneLabel(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}

package cmd

import (
	"fmt"

	"ideaforge/internal/document"
	"ideaforge/internal/event"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Run dimensional research on the approved documents",
	Long: `Spawn the research agent fleet and run all four research phases over
the approved vision and PRD: foundation dimensions and debates, path
exploration, cross-paradigm integration, and the final report.`,
	Args: cobra.NoArgs,
	RunE: runResearch,
}

func init() {
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
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

	// Print phase transitions and progress as the fleet works.
	app.bus.Subscribe("research.phase_changed", func(e event.Event) {
		ev := e.(event.PhaseChangedEvent)
		fmt.Printf("Phase: %s\n", ev.CurrentPhase)
	})
	app.bus.Subscribe("debate.concluded", func(e event.Event) {
		ev := e.(event.DebateConcludedEvent)
		fmt.Printf("  Debate concluded: %s (%d contributions)\n", ev.Topic, ev.Contributions)
	})

	// Surface edits made to drafted documents while research runs.
	if app.cfg.Workflow.WatchDocuments {
		app.bus.Subscribe("document.changed", func(e event.Event) {
			ev := e.(event.DocumentChangedEvent)
			fmt.Printf("  Note: %s changed on disk during research\n", ev.Path)
		})
		watcher, err := document.NewWatcher(app.docs.Dir(), app.bus, app.logger)
		if err == nil {
			defer watcher.Close()
		} else {
			app.logger.Warn("document watcher unavailable", "error", err)
		}
	}

	fmt.Printf("Running research for session %s...\n", s.ID)
	path, err := engine.RunResearch(ctx, s.ID)
	if err != nil {
		return err
	}

	fmt.Printf("\nResearch report written to %s\n", path)
	return nil
}

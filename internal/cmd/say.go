package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sayCmd = &cobra.Command{
	Use:   "say <message>",
	Short: "Continue the brainstorm conversation",
	Long:  `Send a message to the analyst in the brainstorm conversation and print the reply.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSay,
}

func init() {
	rootCmd.AddCommand(sayCmd)
}

func runSay(cmd *cobra.Command, args []string) error {
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

	reply, err := engine.Converse(ctx, s.ID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(reply)
	return nil
}

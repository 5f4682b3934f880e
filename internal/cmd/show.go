package cmd

import (
	"fmt"
	"strings"

	"ideaforge/internal/document"
	"ideaforge/internal/errors"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <doc-type>",
	Short: "Print a drafted document",
	Long: `Print the content of a drafted document. Valid document types:
vision, prd, architecture, research_report.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close()

	docType := document.Type(strings.ToLower(args[0]))
	if !docType.IsValid() {
		return fmt.Errorf("unknown document type %q (valid: vision, prd, architecture, research_report)", args[0])
	}

	s, err := app.session(ctx)
	if err != nil {
		return err
	}

	path := s.Documents[docType.String()]
	if path == "" {
		return errors.NewNotFoundError("document", docType.String()).
			WithCause(errors.ErrDocumentNotFound)
	}
	doc, err := app.docs.Read(path)
	if err != nil {
		return err
	}

	fmt.Println(doc.Content)
	return nil
}

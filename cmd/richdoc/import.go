package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/richdoc"
	"github.com/tsawler/richdoc/importer"
	"github.com/tsawler/richdoc/model"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.docx>",
		Short: "Convert a DOCX file to editor HTML",
		Long: `Import reads a DOCX file and prints sanitized editor HTML.

By default the file is read in-process. With --remote, or when import_url
is configured, it is posted to the import service at <url>/docx/import.

The document's title and author replace --title and --author when present
and are reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	cmd.Flags().StringP("output", "o", "", "Write HTML to this file instead of stdout")
	cmd.Flags().Bool("remote", false, "Use the import service even without import_url")
	cmd.Flags().String("url", "", "Import service base URL (default: config or "+importer.DefaultBaseURL+")")
	cmd.Flags().StringP("title", "t", "", "Current title, kept when the document has none")
	cmd.Flags().StringP("author", "a", "", "Current author, kept when the document has none")

	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	remote, _ := cmd.Flags().GetBool("remote")
	baseURL, _ := cmd.Flags().GetString("url")
	output, _ := cmd.Flags().GetString("output")
	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")

	if baseURL == "" {
		baseURL = cfg.ImportURL
	}

	var imp importer.Importer
	if remote || baseURL != "" {
		imp = importer.NewClient(baseURL, importer.WithLogger(logger))
	} else {
		imp = importer.NewLocal(logger)
	}

	current := model.Metadata{Title: title, Author: author}
	if current.Title == "" {
		current.Title = cfg.DefaultTitle
	}
	if current.Author == "" {
		current.Author = cfg.DefaultAuthor
	}

	html, meta, err := richdoc.ImportFile(cmd.Context(), args[0], current, imp)
	if err != nil {
		return err
	}
	logger.Info("imported", "file", args[0], "title", meta.Title, "author", meta.Author)

	if output == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(output, []byte(html+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

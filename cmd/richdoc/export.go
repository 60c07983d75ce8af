package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/richdoc"
	"github.com/tsawler/richdoc/format"
	"github.com/tsawler/richdoc/internal/config"
	"github.com/tsawler/richdoc/model"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.html>...",
		Short: "Convert editor HTML files to DOCX",
		Long: `Export sanitizes each HTML file, converts it and writes a .docx file
with the same name, next to the input or into --output-dir.

Complete HTML pages lose their navigation, banners, sidebars and footers,
and their <title> and author meta tag are used when no flag is given.
Otherwise the title defaults to default_title from the configuration, then
to the file name, and the author must come from --author or default_author.

Examples:
  richdoc export --author Ana notes.html
  richdoc export -a Ana -o out/ -j 8 drafts/*.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("title", "t", "", "Document title (default: config or file name)")
	cmd.Flags().StringP("author", "a", "", "Document author (default: config)")
	cmd.Flags().StringP("output-dir", "o", "", "Directory for .docx files (default: config or input directory)")
	cmd.Flags().IntP("concurrency", "j", 0, "Number of files converted at once (default: config)")

	return cmd
}

// exportJob is one input file and its resolved settings. The flag values
// win over the page's own metadata, which wins over fallback.
type exportJob struct {
	input    string
	output   string
	title    string
	author   string
	fallback model.Metadata
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))

	title, _ := cmd.Flags().GetString("title")
	author, _ := cmd.Flags().GetString("author")
	outDir, _ := cmd.Flags().GetString("output-dir")
	limit, _ := cmd.Flags().GetInt("concurrency")

	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if limit <= 0 {
		limit = cfg.Concurrency
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	jobs := make([]exportJob, len(args))
	for i, in := range args {
		jobs[i] = planExport(in, title, author, outDir, cfg)
	}

	results, err := exportBatch(cmd.Context(), jobs, limit, logger)
	for _, out := range results {
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
	}
	return err
}

// planExport resolves the output path and metadata for one input.
func planExport(input, title, author, outDir string, cfg *config.Config) exportJob {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	job := exportJob{
		input:    input,
		output:   filepath.Join(dir, stem+format.DOCX.Extension()),
		title:    title,
		author:   author,
		fallback: model.Metadata{Title: cfg.DefaultTitle, Author: cfg.DefaultAuthor},
	}
	if job.fallback.Title == "" {
		job.fallback.Title = stem
	}
	return job
}

// exportBatch converts every job with at most limit running at once. A
// failed file does not stop the others; results[i] is empty when job i
// failed and the joined errors are returned.
func exportBatch(ctx context.Context, jobs []exportJob, limit int, logger *slog.Logger) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]string, len(jobs))
	var (
		mu   sync.Mutex
		errs []error
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			logger.Debug("exporting", "input", job.input, "output", job.output)
			err := richdoc.Open(job.input).
				Title(job.title).
				Author(job.author).
				Defaults(job.fallback).
				Logger(logger).
				Save(job.output)
			if err != nil {
				logger.Warn("export failed", "input", job.input, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", job.input, err))
				mu.Unlock()
				return nil
			}

			results[i] = job.output
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}

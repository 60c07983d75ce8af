package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/richdoc/sanitize"
)

// NewSanitizeCmd creates the sanitize command.
func NewSanitizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize [file.html]",
		Short: "Restrict HTML to the editor whitelist",
		Long: `Sanitize prints the HTML from the file, or stdin, reduced to the tags
and attributes the converter accepts.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			data, err := readInput(cmd, name)
			if err != nil {
				return err
			}

			logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
			s := sanitize.New(sanitize.WithLogger(logger))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.Sanitize(string(data)))
			return err
		},
	}
}

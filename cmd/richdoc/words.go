package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/richdoc"
)

// NewWordsCmd creates the words command.
func NewWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words [file.html]...",
		Short: "Count the words in editor HTML",
		Long: `Words prints the word count the editor status bar shows for each file,
or for stdin when no file is given. The HTML is sanitized first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			for _, name := range args {
				data, err := readInput(cmd, name)
				if err != nil {
					return err
				}
				n, err := richdoc.FromHTML(string(data)).WordCount()
				if err != nil {
					return err
				}
				if len(args) == 1 {
					fmt.Fprintln(cmd.OutOrStdout(), n)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", n, name)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pegstep/ebnftext"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check <grammar-file> <start-rule>",
		Short:         "Parse and verify a grammar file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarFile, startRule := args[0], args[1]

			f, err := os.Open(grammarFile)
			if err != nil {
				return fmt.Errorf("open grammar: %w", err)
			}
			defer f.Close()

			g, err := ebnftext.Load(f, grammarFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			if err := ebnftext.Verify(g, startRule); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return err
			}

			return nil
		},
	}

	return cmd
}

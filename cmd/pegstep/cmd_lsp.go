package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pegstep/lspserver"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp <grammar-file> <start-rule>",
		Short: "Run a language server over stdio, parsing documents against a fixed grammar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarFile, startRule := args[0], args[1]

			g, err := loadGrammar(grammarFile)
			if err != nil {
				return err
			}

			if err := lspserver.New(g, startRule).RunStdio(); err != nil {
				return fmt.Errorf("lsp server: %w", err)
			}
			return nil
		},
	}

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/pegstep/engine"
	"github.com/dhamidi/pegstep/shape"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <grammar-file> <start-rule> <input-file>",
		Short: "Parse an input file against a grammar and print the resulting tree",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			grammarFile, startRule, inputFile := args[0], args[1], args[2]

			g, err := loadGrammar(grammarFile)
			if err != nil {
				return err
			}

			input, err := os.ReadFile(inputFile)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			s := engine.Parse(g, startRule, string(input))

			if errs, pos := s.Errors(); len(errs) > 0 {
				line, column := s.PosToLineColumn(pos)
				for _, e := range errs {
					fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", inputFile, line, column, e)
				}
				return fmt.Errorf("parse failed")
			}

			root := shape.Build(s.Steps())

			switch outputFormat {
			case "json":
				data, err := json.MarshalIndent(root, "", "  ")
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				fmt.Println(string(data))
			case "tree":
				fmt.Print(root.String())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json)")

	return cmd
}

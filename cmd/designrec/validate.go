package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
)

func validateCmd() *cobra.Command {
	var corpusDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load a corpus directory and report what it contains",
		Long:  "Validate parses every domain CSV, builds all indices, and fails on the first malformed row. Useful as a pre-deploy check for corpus changes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, corpusDir)
		},
	}

	cmd.Flags().StringVar(&corpusDir, "corpus", "", "corpus directory (empty = built-in corpus)")
	return cmd
}

func runValidate(cmd *cobra.Command, corpusDir string) error {
	loader := corpus.NewLoader(corpusDir, zap.NewNop())
	gen, err := loader.Load(context.Background())
	if err != nil {
		return err
	}

	cmd.Printf("corpus version: %s\n", gen.Version())
	total := 0
	for _, d := range gen.Domains() {
		n := gen.DocCount(d)
		total += n
		cmd.Printf("  %-12s %d documents\n", d, n)
	}
	cmd.Printf("total: %d documents, %d incompatible tag pairs\n", total, gen.Graph().Len())
	return nil
}

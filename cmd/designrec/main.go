package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/uxforge/designrec/internal/version"
)

func main() {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "designrec",
		Short:        "Design recommendation engine",
		Long:         "designrec turns a free-text product brief into a compatible bundle of design choices: style, palette, typography, layout, charts, stack, UX guidelines, and components.",
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), recommendCmd(), validateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

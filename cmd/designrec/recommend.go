package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uxforge/designrec/internal/corpus"
	"github.com/uxforge/designrec/internal/domain/signal"
	"github.com/uxforge/designrec/internal/usecase/extract"
	"github.com/uxforge/designrec/internal/usecase/recommend"
	"github.com/uxforge/designrec/internal/usecase/resolve"
	"github.com/uxforge/designrec/internal/usecase/retrieve"
)

func recommendCmd() *cobra.Command {
	var (
		corpusDir string
		topK      int
		deadline  time.Duration
		overrides []string
	)

	cmd := &cobra.Command{
		Use:   "recommend <brief...>",
		Short: "Run the pipeline once and print the bundle as JSON",
		Example: `  designrec recommend "minimal SaaS landing page for signup"
  designrec recommend --override style_pref=dark -- modern fintech dashboard`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brief := strings.Join(args, " ")
			return runRecommend(cmd, brief, corpusDir, topK, deadline, overrides)
		},
	}

	cmd.Flags().StringVar(&corpusDir, "corpus", "", "corpus directory (empty = built-in corpus)")
	cmd.Flags().IntVar(&topK, "top-k", retrieve.DefaultTopK, "candidates per domain")
	cmd.Flags().DurationVar(&deadline, "deadline", 0, "retrieval deadline (0 = none)")
	cmd.Flags().StringArrayVar(&overrides, "override", nil, "signal override key=value (repeatable)")
	return cmd
}

func runRecommend(
	cmd *cobra.Command, brief, corpusDir string, topK int, deadline time.Duration, rawOverrides []string,
) error {
	ovr, err := parseOverrides(rawOverrides)
	if err != nil {
		return err
	}

	loader := corpus.NewLoader(corpusDir, zap.NewNop())
	manager := corpus.NewManager(loader, zap.NewNop())

	ctx := context.Background()
	if err := manager.Bootstrap(ctx); err != nil {
		return err
	}

	if deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	pipeline := recommend.New(extract.New(), retrieve.New(topK), resolve.New(0), manager)
	b, err := pipeline.Recommend(ctx, recommend.Request{Brief: brief, Overrides: ovr})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}
	cmd.Println(string(out))
	return nil
}

func parseOverrides(raw []string) (map[signal.Key]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[signal.Key]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("override %q must be key=value", kv)
		}
		out[signal.Key(k)] = v
	}
	return out, nil
}

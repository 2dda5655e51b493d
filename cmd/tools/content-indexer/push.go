package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"healthquote-funnel/internal/common/database"
	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"

	"github.com/spf13/cobra"
)

var pushTimeout time.Duration

func pushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push every page into the Elasticsearch pages index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.Elasticsearch.GetURL() == "" {
				return fmt.Errorf("no elasticsearch address configured")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), pushTimeout)
			defer cancel()

			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}

			log := newLogger()
			searcher := content.NewElasticSearcher(es.Client, cfg.Database.Elasticsearch.PagesIndex, log)
			return runPush(ctx, cmd.OutOrStdout(), cfg.Content.PagesDir, searcher, log)
		},
	}
	cmd.Flags().DurationVar(&pushTimeout, "timeout", 2*time.Minute, "overall timeout for the push")
	return cmd
}

// pageIndexer is the part of the Elasticsearch searcher the push needs.
type pageIndexer interface {
	EnsureIndex(ctx context.Context) error
	IndexPage(ctx context.Context, p *content.Page) error
}

func runPush(ctx context.Context, out io.Writer, dir string, idx pageIndexer, log logger.Logger) error {
	store := content.NewStore(dir, log)
	if err := store.Load(); err != nil {
		return err
	}
	if err := idx.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	failed := 0
	for _, p := range store.All() {
		if err := idx.IndexPage(ctx, p); err != nil {
			failed++
			log.Error("index page failed", map[string]interface{}{"slug": p.Slug, "error": err.Error()})
		}
	}

	fmt.Fprintf(out, "Pushed %d of %d pages\n", store.Len()-failed, store.Len())
	if failed > 0 {
		return fmt.Errorf("%d page(s) failed to index", failed)
	}
	return nil
}

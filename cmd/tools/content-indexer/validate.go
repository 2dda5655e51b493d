package main

import (
	"fmt"
	"io"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"
	"healthquote-funnel/pkg/registry"

	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the page index against itself and the content directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg.Content.PagesDir, cfg.Content.IndexPath, newLogger())
		},
	}
}

// runValidate reports index problems plus pages that are on disk but not indexed, or the reverse.
func runValidate(out io.Writer, dir, path string, log logger.Logger) error {
	idx, err := registry.LoadIndex(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	problems := idx.Validate()

	store := content.NewStore(dir, log)
	if err := store.Load(); err != nil {
		return err
	}
	for _, p := range store.All() {
		if p.Slug == content.HomeSlug {
			continue
		}
		if _, ok := idx.Find(p.Slug); !ok {
			problems = append(problems, fmt.Sprintf("%s: page not in index", p.Slug))
		}
	}
	for _, e := range idx.Pages {
		if _, ok := store.Get(e.Slug); !ok {
			problems = append(problems, fmt.Sprintf("%s: indexed page has no content file", e.Slug))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(out, "  -", p)
		}
		return fmt.Errorf("page index validation failed with %d problem(s)", len(problems))
	}
	fmt.Fprintf(out, "Page index valid: %d pages\n", len(idx.Pages))
	return nil
}

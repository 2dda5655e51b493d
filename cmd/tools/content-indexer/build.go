package main

import (
	"fmt"
	"io"

	"healthquote-funnel/internal/common/logger"
	"healthquote-funnel/internal/content"
	"healthquote-funnel/pkg/registry"

	"github.com/spf13/cobra"
)

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the page index from the content directory",
		Long: `Parse every page in the content directory and write the page index that the
sitemap is built from. Pages with problems (empty titles, bad slugs) fail the build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runBuild(cmd.OutOrStdout(), cfg.Content.PagesDir, cfg.Content.IndexPath, newLogger())
		},
	}
}

func runBuild(out io.Writer, dir, path string, log logger.Logger) error {
	store := content.NewStore(dir, log)
	if err := store.Load(); err != nil {
		return err
	}

	idx := content.Index(store)
	if problems := idx.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(out, "  -", p)
		}
		return fmt.Errorf("page index has %d problem(s)", len(problems))
	}

	if err := registry.SaveIndex(path, idx); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(out, "Wrote %d pages to %s\n", len(idx.Pages), path)
	return nil
}

// cmd/tools/content-indexer/main.go
package main

import (
	"fmt"
	"os"

	"healthquote-funnel/internal/common/config"
	"healthquote-funnel/internal/common/logger"

	"github.com/spf13/cobra"
)

var (
	configPath string
	pagesDir   string
	indexPath  string
	verbose    bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "content-indexer",
		Short:         "Maintain the page index and the search index for site content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&pagesDir, "pages", "", "content pages directory (overrides config)")
	root.PersistentFlags().StringVar(&indexPath, "index", "", "page index file (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(buildCmd())
	root.AddCommand(pushCmd())
	root.AddCommand(validateCmd())
	return root
}

// loadConfig applies the flag overrides on top of the config file or the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if pagesDir != "" {
		cfg.Content.PagesDir = pagesDir
	}
	if indexPath != "" {
		cfg.Content.IndexPath = indexPath
	}
	return cfg, nil
}

func newLogger() logger.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logger.NewStructured(level, "console")
}

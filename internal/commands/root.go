package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/resibo-dev/resibo/internal/buildinfo"
	"github.com/resibo-dev/resibo/internal/config"
	"github.com/resibo-dev/resibo/internal/directory"
	"github.com/resibo-dev/resibo/internal/engine"
	"github.com/resibo-dev/resibo/internal/extract"
	"github.com/resibo-dev/resibo/internal/ledger"
	"github.com/resibo-dev/resibo/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "resibo",
		Short:   "Receipt ledger and extraction engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "resibo.yaml", "configuration file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newDirectoryCommand())
	rootCmd.AddCommand(newSessionCommand())

	return rootCmd
}

// loadConfig reads the --config file, falling back to defaults when
// the file does not exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildEngine assembles a fresh engine from configuration.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	dir := directory.NewResolver(cfg.DirectoryEntries())
	ex, err := extract.New(cfg.ExtractorConfig(), dir)
	if err != nil {
		return nil, fmt.Errorf("building extractor: %w", err)
	}
	return engine.New(engine.Params{
		Extractor:          ex,
		Store:              ledger.NewStore(dir),
		Directory:          dir,
		Logger:             logging.New(),
		CurrencySymbol:     cfg.Currency.Symbol,
		MinAliasDisplayLen: cfg.Extract.MinAliasDisplayLen,
	}), nil
}

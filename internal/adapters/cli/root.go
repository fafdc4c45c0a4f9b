// Package cli is the command-line interface: an interactive chat, one-shot
// questions and catalog maintenance commands.
package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shantanugsharp/chatbot-be/internal/app"
	"github.com/shantanugsharp/chatbot-be/internal/config"
	"github.com/shantanugsharp/chatbot-be/internal/logging"
)

// AppFactory builds the application for commands that talk to a provider.
type AppFactory func(ctx context.Context, cfg *config.Config) (*app.App, error)

// DefaultAppFactory checks provider credentials and builds the real app.
func DefaultAppFactory(ctx context.Context, cfg *config.Config) (*app.App, error) {
	if err := cfg.ValidateProvider(); err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}

type rootOptions struct {
	configPath string
	catalog    string
	verbose    bool

	cfg    *config.Config
	newApp AppFactory
}

// NewRootCommand builds the mira command tree. newApp may be nil, in which
// case DefaultAppFactory is used.
func NewRootCommand(newApp AppFactory) *cobra.Command {
	if newApp == nil {
		newApp = DefaultAppFactory
	}
	opts := &rootOptions{newApp: newApp}

	cmd := &cobra.Command{
		Use:   "mira",
		Short: "MIRA - conversational music recommendations over a track catalog",
		Long: `MIRA answers music requests with tracks picked from a local catalog and
chats about anything else. The catalog is a JSON document or a SQLite table.`,
		Version:           app.Version,
		SilenceUsage:      true,
		PersistentPreRunE: opts.load,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	flags.StringVar(&opts.catalog, "catalog", "", "catalog file (.json, or .db/.sqlite for SQLite)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newChatCommand(opts),
		newAskCommand(opts),
		newStatsCommand(opts),
		newValidateCommand(),
		newImportCommand(),
	)
	return cmd
}

// load reads configuration and applies flag overrides.
func (o *rootOptions) load(cmd *cobra.Command, _ []string) error {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: cmd.ErrOrStderr()})

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.catalog != "" {
		applyCatalogFlag(&cfg.Catalog, o.catalog)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --catalog: %w", err)
		}
	}
	o.cfg = cfg
	return nil
}

func applyCatalogFlag(c *config.CatalogConfig, path string) {
	c.Path = path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		c.Source = "sqlite"
	default:
		c.Source = "json"
	}
}

func (o *rootOptions) app(ctx context.Context) (*app.App, error) {
	a, err := o.newApp(ctx, o.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MIRA: %w", err)
	}
	return a, nil
}

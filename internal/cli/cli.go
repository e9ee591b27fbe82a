// Package cli implements the wordwall command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/wordwall/pkg/buildinfo"
	"github.com/matzehuels/wordwall/pkg/cache"
	"github.com/matzehuels/wordwall/pkg/observability"
	"github.com/matzehuels/wordwall/pkg/pipeline"
	"github.com/matzehuels/wordwall/pkg/translate"
	"github.com/matzehuels/wordwall/pkg/vocab"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wordwall"

	// wordsFile is the default file backend path under the data directory.
	wordsFile = "words.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	config  *viper.Viper
	cfgFile string
	envFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: viper.New(),
	}
}

// SetLogLevel updates the logger's level; debug output names its caller.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Wordwall lays out your vocabulary as a word cloud",
		Long: `Wordwall keeps a vocabulary list and arranges it as a word cloud:
frequent and unmastered words are large and central, mastered words fade.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: ~/.wordwall.yaml)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	root.PersistentFlags().String("storage", "", "storage backend: file (default), sqlite, mongo, redis")
	root.PersistentFlags().String("data", "", "word list file for the file and sqlite backends")
	c.bindFlag(root.PersistentFlags().Lookup("storage"), keyStorageBackend)
	c.bindFlag(root.PersistentFlags().Lookup("data"), keyStoragePath)

	root.AddCommand(c.addCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.masterCommand(true))
	root.AddCommand(c.masterCommand(false))
	root.AddCommand(c.resetCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// openStore opens the configured word store, seeding a fresh one with
// example words.
func (c *CLI) openStore(ctx context.Context) (*vocab.Store, error) {
	cfg := c.settings()
	b, err := vocab.OpenBackend(ctx, cfg.backendConfig())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	store, err := vocab.Open(ctx, b, vocab.Options{SeedExamples: true, Logger: c.Logger})
	if err != nil {
		b.Close()
		return nil, err
	}
	return store, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, scopedKeyer(), c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.settings().Cache.Redis; url != "" {
		return cache.NewRedisCache(ctx, url, appName+":")
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newTranslator returns nil when no provider is configured or no API key
// is available.
func (c *CLI) newTranslator(ctx context.Context) *translate.Translator {
	cfg := c.settings().Translate
	if cfg.Provider == "" || cfg.APIKey == "" {
		return nil
	}
	p, err := translate.NewProvider(ctx, translate.Config{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   cfg.APIKey,
	})
	if err != nil {
		c.Logger.Warn("translation disabled", "error", err)
		return nil
	}
	tc, err := c.newCache(ctx, false)
	if err != nil {
		tc = cache.NewNullCache()
	}
	return translate.New(p, translate.Options{
		Target: cfg.Target,
		Cache:  tc,
		Keyer:  scopedKeyer(),
		Logger: c.Logger,
	})
}

// scopedKeyer keeps cache entries of different releases apart.
func scopedKeyer() cache.Keyer {
	return cache.NewScopedKeyer(nil, buildinfo.CacheScope())
}

// installHooks routes pipeline, cache and provider events to the debug log.
func (c *CLI) installHooks() {
	observability.NewLogHooks(c.Logger).Install()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/wordwall/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/wordwall/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

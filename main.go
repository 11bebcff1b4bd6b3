package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmfantin2/botdocs/internal/catalog"
	"github.com/jmfantin2/botdocs/internal/config"
	"github.com/jmfantin2/botdocs/internal/logging"
	"github.com/jmfantin2/botdocs/internal/storage"
)

// cfg is loaded from the environment before any init runs so flag
// defaults reflect it.
var cfg = mustLoadConfig()

func mustLoadConfig() config.Config {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return loaded
}

var rootCmd = &cobra.Command{
	Use:   "botdocs",
	Short: "Documentation catalog for chatbots and their automation workflows",
	Long: `botdocs keeps a catalog of organizations, the chatbots they run and the
workflows behind each chatbot, with credentials, links, agents and a dated
timeline of notes and workflow exports.

The catalog is served to MCP clients with "botdocs serve" and can be queried
from the shell with "search", "tree" and "stats".`,
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return cfg.Validate()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory for the catalog database or file")
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "Persistence backend: sqlite, file, redis or memory")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (redis backend only)")
	flags.StringVar(&cfg.DataKey, "key", cfg.DataKey, "Key the catalog is stored under")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// openCatalog builds the logger, opens the configured backend and loads the
// catalog. A load failure is logged and the catalog starts empty.
func openCatalog(ctx context.Context) (*catalog.Store, storage.BlobStore, *zap.Logger, error) {
	logger, err := logging.New(cfg.Production())
	if err != nil {
		return nil, nil, nil, err
	}

	blobs, err := storage.Open(ctx, cfg.Backend, cfg.DataDir, cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}

	logger.Debug("backend opened", backendFields(blobs)...)

	store := catalog.New(blobs, logger, catalog.WithKey(cfg.DataKey))
	if err := store.Load(ctx); err != nil {
		logger.Warn("starting with an empty catalog", zap.Error(err))
	}
	return store, blobs, logger, nil
}

func backendFields(blobs storage.BlobStore) []zap.Field {
	fields := []zap.Field{zap.String("backend", cfg.Backend), zap.String("key", cfg.DataKey)}
	switch b := blobs.(type) {
	case *storage.SQLiteStore:
		fields = append(fields, zap.String("path", b.Path()))
	case *storage.FileStore:
		fields = append(fields, zap.String("path", b.Path(cfg.DataKey)))
	}
	return fields
}

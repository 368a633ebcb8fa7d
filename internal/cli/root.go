package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ila/config"
	"ila/internal/adapter/cache"
	"ila/internal/adapter/embedding"
	"ila/internal/adapter/store"
	"ila/internal/port"
	"ila/internal/usecase"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ila",
	Short: "ila - Intelligent Local Archive with semantic note retrieval",
	Long: `ila is a local note archive that retrieves by meaning instead of
keywords. Notes are embedded with a sentence-transformer model and
searched by cosine similarity over the stored vectors.

Example usage:
  ila add "Postgres vacuum settings for large tables"
  ila find "database maintenance"
  ila ingest notes.txt`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ila.yaml)")
}

// newEmbedder builds the configured embedding provider, optionally wrapped
// in the durable bbolt cache. The returned cleanup must be called when the
// command finishes.
func newEmbedder(cfg *config.Config) (port.Embedder, func(), error) {
	var embedder port.Embedder
	var err error

	switch cfg.Embedding.Provider {
	case "ollama":
		embedder, err = embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL, cfg.Embedding.Dimension)
	case "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.Dimension)
	case "mock":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	if !cfg.Embedding.Cache {
		return embedder, func() {}, nil
	}

	cached, err := cache.NewCachedEmbedder(embedder, cfg.Embedding.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	return cached, func() { cached.Close() }, nil
}

// openArchive wires the store and embedder into the archive facade.
func openArchive(cfg *config.Config) (*usecase.Archive, func(), error) {
	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}

	embedder, closeEmbedder, err := newEmbedder(cfg)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	cleanup := func() {
		closeEmbedder()
		st.Close()
	}
	return usecase.NewArchive(st, embedder), cleanup, nil
}

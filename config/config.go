package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the archive.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Ingest    IngestConfig    `yaml:"ingest"`
}

// DatabaseConfig locates the SQLite archive file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig selects and parameterizes the embedding provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "ollama", "openai", "mock"
	Model     string `yaml:"model"`       // e.g., "all-minilm"
	BaseURL   string `yaml:"base_url"`    // Ollama server URL
	APIKeyEnv string `yaml:"api_key_env"` // Environment variable for API key
	Dimension int    `yaml:"dimension"`
	Cache     bool   `yaml:"cache"`      // persist computed embeddings
	CachePath string `yaml:"cache_path"` // bbolt cache file
}

// ChunkingConfig controls file ingestion chunking.
type ChunkingConfig struct {
	ChunkSize int `yaml:"chunk_size"` // max chunk length in characters
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// IngestConfig filters files when ingesting a directory.
type IngestConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// DefaultConfig returns the default configuration: a local Ollama
// sentence-transformer model and an ila.db archive in the working
// directory.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "ila.db",
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			BaseURL:   "http://localhost:11434/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 384,
			Cache:     true,
			CachePath: "ila.cache.db",
		},
		Chunking: ChunkingConfig{
			ChunkSize: 500,
		},
		Retrieve: RetrieveConfig{
			TopK: 3,
		},
		Ingest: IngestConfig{
			Includes: []string{"**/*.txt", "**/*.md"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/vendor/**"},
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults for
// anything the file does not set.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for ila.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "ila.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

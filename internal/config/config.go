package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ChunkerConfig configures how guide documents are split into chunks.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	OverlapWords int `yaml:"overlap_words"`
}

// SearchConfig configures query-time defaults.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// SummaryConfig configures the corpus overview summarizer.
type SummaryConfig struct {
	MaxSentences int `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	GuidesDir string        `yaml:"guides_dir"`
	StoreDir  string        `yaml:"store_dir"`
	Chunker   ChunkerConfig `yaml:"chunker"`
	Search    SearchConfig  `yaml:"search"`
	Summary   SummaryConfig `yaml:"summary"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./guidesearch.yaml first, then
// ~/.config/guidesearch/config.yaml. If neither exists, it writes defaults
// to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "guidesearch.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnvOverrides(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "guidesearch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		GuidesDir: "guides",
		StoreDir:  "index",
		Chunker:   ChunkerConfig{ChunkSize: 500, OverlapWords: 10},
		Search:    SearchConfig{TopK: 3},
		Summary:   SummaryConfig{MaxSentences: 3},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.GuidesDir == "" {
		cfg.GuidesDir = def.GuidesDir
	}
	if cfg.StoreDir == "" {
		cfg.StoreDir = def.StoreDir
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = def.Chunker.ChunkSize
	}
	if cfg.Chunker.OverlapWords == 0 {
		cfg.Chunker.OverlapWords = def.Chunker.OverlapWords
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = def.Search.TopK
	}
	if cfg.Summary.MaxSentences == 0 {
		cfg.Summary.MaxSentences = def.Summary.MaxSentences
	}
}

// applyEnvOverrides lets the surrounding overlay point the core at its own
// folders without editing the config file. Values usually come from a .env
// file loaded at startup.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("GUIDESEARCH_GUIDES_DIR"); v != "" {
		cfg.GuidesDir = v
	}
	if v := os.Getenv("GUIDESEARCH_STORE_DIR"); v != "" {
		cfg.StoreDir = v
	}
}

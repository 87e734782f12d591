package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Pagination PaginationConfig `json:"pagination"`
	Collection CollectionConfig `json:"collection"`
	Enrichment EnrichmentConfig `json:"enrichment"`
	Filters    FilterConfig     `json:"filters"`
}

// PaginationConfig holds pagination options.
type PaginationConfig struct {
	PageSize int `json:"pageSize"`
}

// CollectionConfig holds log collection options.
type CollectionConfig struct {
	// Jobs bounds how many repositories are walked concurrently.
	Jobs int `json:"jobs"`
	// TimeoutSeconds is the per-repository collection timeout; 0 disables it.
	TimeoutSeconds int `json:"timeoutSeconds"`
}

// Timeout returns the per-repository timeout as a duration.
func (c CollectionConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// EnrichmentConfig holds external analyzer options.
type EnrichmentConfig struct {
	// Tool is the analyzer executable looked up on PATH. When absent,
	// the built-in enricher is used instead.
	Tool    string `json:"tool"`
	Enabled bool   `json:"enabled"`
}

// FilterConfig holds changed-path filtering options.
type FilterConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Pagination: PaginationConfig{
			PageSize: 10,
		},
		Collection: CollectionConfig{
			Jobs:           4,
			TimeoutSeconds: 60,
		},
		Enrichment: EnrichmentConfig{
			Tool:    "commit-analyzer",
			Enabled: true,
		},
		Filters: FilterConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".repolens.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".repolens.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".repolens.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type GBIFConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Limit          int    `toml:"limit"`
	UserAgent      string `toml:"user_agent"`
}

type BatchConfig struct {
	Concurrency int `toml:"concurrency"`
}

type AggregationConfig struct {
	SkipKeylessGroups bool `toml:"skip_keyless_groups"`
}

// ServiceConfig describes the metadata document returned when /reconcile
// is called without a query.
type ServiceConfig struct {
	Name            string   `toml:"name"`
	IdentifierSpace string   `toml:"identifier_space"`
	SchemaSpace     string   `toml:"schema_space"`
	ViewURL         string   `toml:"view_url"`
	PreviewURL      string   `toml:"preview_url"`
	PreviewWidth    int      `toml:"preview_width"`
	PreviewHeight   int      `toml:"preview_height"`
	DefaultTypes    []string `toml:"default_types"`
	CandidateType   string   `toml:"candidate_type"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	GBIF        GBIFConfig        `toml:"gbif"`
	Batch       BatchConfig       `toml:"batch"`
	Aggregation AggregationConfig `toml:"aggregation"`
	Service     ServiceConfig     `toml:"service"`
}

// MaxLimit is the largest page size the GBIF species endpoints are asked for.
const MaxLimit = 200

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		GBIF: GBIFConfig{
			BaseURL:        "https://api.gbif.org/v1",
			TimeoutSeconds: 60,
			Limit:          MaxLimit,
			UserAgent:      "gbif-reconcile",
		},
		Batch: BatchConfig{Concurrency: 1},
		Service: ServiceConfig{
			Name:            "GBIF Reconciliation Service",
			IdentifierSpace: "http://www.gbif.org/species/",
			SchemaSpace:     "http://rs.tdwg.org/dwc/terms/",
			ViewURL:         "http://www.gbif.org/species/{{id}}#overview",
			PreviewURL:      "http://www.gbif.org/species/{{id}}#overview",
			PreviewWidth:    700,
			PreviewHeight:   350,
			DefaultTypes:    []string{},
			CandidateType:   "http://www.gbif.org/species/",
		},
	}
}

// Load reads a TOML file on top of Default. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// ApplyEnv overrides config values with environment variables if present.
func (c *Config) ApplyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if baseURL := os.Getenv("GBIF_BASE_URL"); baseURL != "" {
		c.GBIF.BaseURL = baseURL
	}
	if timeout := os.Getenv("GBIF_TIMEOUT_SECONDS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			c.GBIF.TimeoutSeconds = n
		}
	}
	if concurrency := os.Getenv("BATCH_CONCURRENCY"); concurrency != "" {
		if n, err := strconv.Atoi(concurrency); err == nil {
			c.Batch.Concurrency = n
		}
	}
	c.normalize()
}

func (c *Config) normalize() {
	if c.GBIF.Limit <= 0 || c.GBIF.Limit > MaxLimit {
		c.GBIF.Limit = MaxLimit
	}
	if c.GBIF.TimeoutSeconds <= 0 {
		c.GBIF.TimeoutSeconds = 60
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = 1
	}
	if c.Service.DefaultTypes == nil {
		c.Service.DefaultTypes = []string{}
	}
}

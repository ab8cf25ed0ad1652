package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/exclint/internal/adapters/driven/maven"
	"github.com/custodia-labs/exclint/internal/core/domain"
)

const (
	// DefaultFileName is the configuration file looked up in the working directory.
	DefaultFileName = ".exclint.toml"

	// EnvMavenToken overrides maven.token when set.
	EnvMavenToken = "EXCLINT_MAVEN_TOKEN"

	// DefaultTimeoutSeconds bounds each repository request.
	DefaultTimeoutSeconds = 30

	// DefaultWorkers is the number of closures resolved in parallel.
	DefaultWorkers = 4

	// DefaultCacheTTLHours is one week.
	DefaultCacheTTLHours = 168
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the typed content of .exclint.toml.
type Config struct {
	Maven        MavenConfig    `toml:"maven"`
	Analysis     AnalysisConfig `toml:"analysis"`
	Cache        CacheConfig    `toml:"cache"`
	Suppressions []Suppression  `toml:"suppressions"`
}

// MavenConfig configures repository access.
type MavenConfig struct {
	Repositories      []string `toml:"repositories"`
	Token             string   `toml:"token,omitempty"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	TimeoutSeconds    int      `toml:"timeout_seconds"`
}

// AnalysisConfig configures the analyzer.
type AnalysisConfig struct {
	Workers int `toml:"workers"`
}

// CacheConfig configures the persistent closure cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled"`
	Dir      string `toml:"dir,omitempty"`
	TTLHours int    `toml:"ttl_hours"`
}

// Suppression is a suppression rule as written in the file.
type Suppression struct {
	DependencyGroupID    string `toml:"dependency_group_id"`
	DependencyArtifactID string `toml:"dependency_artifact_id"`
	ExclusionGroupID     string `toml:"exclusion_group_id"`
	ExclusionArtifactID  string `toml:"exclusion_artifact_id"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Maven: MavenConfig{
			Repositories:      []string{maven.DefaultRepository},
			RequestsPerSecond: maven.DefaultRequestsPerSecond,
			TimeoutSeconds:    DefaultTimeoutSeconds,
		},
		Analysis: AnalysisConfig{Workers: DefaultWorkers},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: DefaultCacheTTLHours,
		},
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file - defaults apply
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if token := os.Getenv(EnvMavenToken); token != "" {
		cfg.Maven.Token = token
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML. The token is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.Maven.Token = ""

	data, err := toml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks value ranges and suppression rules.
func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: analysis.workers must not be negative", ErrInvalidConfig)
	}
	if c.Maven.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: maven.timeout_seconds must not be negative", ErrInvalidConfig)
	}
	if c.Cache.TTLHours < 0 {
		return fmt.Errorf("%w: cache.ttl_hours must not be negative", ErrInvalidConfig)
	}
	_, err := c.SuppressionRules()
	return err
}

// SuppressionRules converts and validates the configured suppressions.
func (c *Config) SuppressionRules() ([]domain.SuppressionRule, error) {
	rules := make([]domain.SuppressionRule, 0, len(c.Suppressions))
	for i, s := range c.Suppressions {
		rule := domain.SuppressionRule{
			DependencyGroupID:    s.DependencyGroupID,
			DependencyArtifactID: s.DependencyArtifactID,
			ExclusionGroupID:     s.ExclusionGroupID,
			ExclusionArtifactID:  s.ExclusionArtifactID,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("suppressions[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// Timeout returns the repository request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Maven.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached closures stay valid.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

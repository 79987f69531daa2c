// Package config loads and validates the quietsearch settings file.
//
// DESIGN: Configuration comes from a single YAML file. Required fields are
// validated up front; the locales batch-job section carries documented
// defaults so the catalog update can run from a minimal settings file.
//
// FILES:
//   - config.go:  Root Settings struct, Load(), Validate()
//   - engines.go: Per-engine settings block (raw, pre-merge)
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quietsearch/quietsearch/internal/monitoring"
)

// Settings is the root configuration.
type Settings struct {
	General          GeneralConfig           `yaml:"general"`            // Instance identity
	Logging          monitoring.LoggerConfig `yaml:"logging"`            // Log level/format/output
	Outgoing         OutgoingConfig          `yaml:"outgoing"`           // Outgoing request settings
	CategoriesAsTabs []string                `yaml:"categories_as_tabs"` // Categories shown as UI tabs
	Engines          []EngineSettings        `yaml:"engines"`            // Configured engines
	Locales          LocalesConfig           `yaml:"locales"`            // Locale catalog job tunables
}

// GeneralConfig contains instance identity settings.
type GeneralConfig struct {
	InstanceName string `yaml:"instance_name"`
}

// OutgoingConfig contains outgoing HTTP request settings.
type OutgoingConfig struct {
	RequestTimeout    time.Duration `yaml:"request_timeout"`     // Default per-engine timeout
	UsingTorProxy     bool          `yaml:"using_tor_proxy"`     // Route all engines through Tor
	ExtraProxyTimeout time.Duration `yaml:"extra_proxy_timeout"` // Added to timeout for onion routing
}

// LocalesConfig contains the tunables of the locale catalog batch job.
// The thresholds decide which languages and country variants survive the
// cross-engine coverage filter.
type LocalesConfig struct {
	MinEnginesPerLang    int           `yaml:"min_engines_per_lang"`    // Coverage needed to keep a language
	MinEnginesPerCountry int           `yaml:"min_engines_per_country"` // Coverage needed to keep a country variant
	FetchConcurrency     int           `yaml:"fetch_concurrency"`       // Parallel capability fetches
	FetchTimeout         time.Duration `yaml:"fetch_timeout"`           // Per-fetch timeout
	CachePath            string        `yaml:"cache_path"`              // SQLite fetch cache
	CapabilityFile       string        `yaml:"capability_file"`         // Raw per-engine capability artifact
	CatalogFile          string        `yaml:"catalog_file"`            // Filtered locale catalog artifact
	NameFallbackEngine   string        `yaml:"name_fallback_engine"`    // Name source when the locale catalog has none
}

// Defaults for the locales section, applied when a field is unset.
const (
	DefaultMinEnginesPerLang    = 12
	DefaultMinEnginesPerCountry = 7
	DefaultFetchConcurrency     = 4
	DefaultFetchTimeout         = 10 * time.Second
	DefaultNameFallbackEngine   = "wikipedia"
)

// expandEnvWithDefaults expands environment variables with support for default
// values. Supports both ${VAR} and ${VAR:-default} syntax.
func expandEnvWithDefaults(s string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}

// ExpandEnvWithDefaults expands environment variables with support for default
// values. Exported for callers that pre-process settings fragments.
func ExpandEnvWithDefaults(s string) string {
	return expandEnvWithDefaults(s)
}

// Load reads settings from a YAML file.
func Load(path string) (*Settings, error) {
	if path == "" {
		return nil, fmt.Errorf("settings file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses settings from raw YAML bytes.
// Supports ${VAR:-default} env var expansion and validation.
func LoadFromBytes(data []byte) (*Settings, error) {
	expanded := expandEnvWithDefaults(string(data))

	var s Settings
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	s.applyDefaults()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}

// applyDefaults fills unset tunables of the locales section.
func (s *Settings) applyDefaults() {
	if s.Outgoing.RequestTimeout == 0 {
		s.Outgoing.RequestTimeout = 3 * time.Second
	}
	if s.Locales.MinEnginesPerLang == 0 {
		s.Locales.MinEnginesPerLang = DefaultMinEnginesPerLang
	}
	if s.Locales.MinEnginesPerCountry == 0 {
		s.Locales.MinEnginesPerCountry = DefaultMinEnginesPerCountry
	}
	if s.Locales.FetchConcurrency == 0 {
		s.Locales.FetchConcurrency = DefaultFetchConcurrency
	}
	if s.Locales.FetchTimeout == 0 {
		s.Locales.FetchTimeout = DefaultFetchTimeout
	}
	if s.Locales.NameFallbackEngine == "" {
		s.Locales.NameFallbackEngine = DefaultNameFallbackEngine
	}
	if len(s.CategoriesAsTabs) == 0 {
		s.CategoriesAsTabs = []string{"general", "images", "videos", "news", "map", "music", "it", "science", "files", "social media"}
	}
}

// Validate checks if the settings are valid.
func (s *Settings) Validate() error {
	if s.Outgoing.RequestTimeout < 0 {
		return fmt.Errorf("outgoing.request_timeout must not be negative")
	}
	if s.Outgoing.ExtraProxyTimeout < 0 {
		return fmt.Errorf("outgoing.extra_proxy_timeout must not be negative")
	}
	if s.Locales.MinEnginesPerLang < 1 {
		return fmt.Errorf("locales.min_engines_per_lang must be at least 1")
	}
	if s.Locales.MinEnginesPerCountry < 1 {
		return fmt.Errorf("locales.min_engines_per_country must be at least 1")
	}
	if s.Locales.FetchConcurrency < 1 {
		return fmt.Errorf("locales.fetch_concurrency must be at least 1")
	}
	for i := range s.Engines {
		if err := s.Engines[i].Validate(); err != nil {
			return fmt.Errorf("engines[%d]: %w", i, err)
		}
	}
	return nil
}

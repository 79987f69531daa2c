package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EngineSettings is the raw per-engine configuration block, before merging
// with module and global defaults. Optional fields are pointers so the merge
// can tell "unset" from an explicit false/zero.
type EngineSettings struct {
	Name       string     `yaml:"name"`
	Engine     string     `yaml:"engine"` // capability-provider module identifier
	Shortcut   *string    `yaml:"shortcut"`
	Categories StringList `yaml:"categories"`
	EngineType *string    `yaml:"engine_type"`

	Timeout  *time.Duration `yaml:"timeout"`
	Inactive *bool          `yaml:"inactive"`
	Disabled *bool          `yaml:"disabled"`

	Paging           *bool `yaml:"paging"`
	SafeSearch       *bool `yaml:"safesearch"`
	TimeRangeSupport *bool `yaml:"time_range_support"`

	UsingTorProxy            *bool `yaml:"using_tor_proxy"`
	EnableHTTP               *bool `yaml:"enable_http"`
	DisplayErrorMessages     *bool `yaml:"display_error_messages"`
	SendAcceptLanguageHeader *bool `yaml:"send_accept_language_header"`

	BaseURL    *string `yaml:"base_url"`
	SearchURL  *string `yaml:"search_url"`
	OnionURL   *string `yaml:"onion_url"`
	SearchPath *string `yaml:"search_path"`

	// Language narrows a multi-language engine to a single fixed language.
	Language *string `yaml:"language"`

	Tokens []string          `yaml:"tokens"`
	About  map[string]string `yaml:"about"`
}

// Validate checks structural constraints that do not depend on the module.
// Missing name/engine is handled (and logged per engine) by the loader.
func (e *EngineSettings) Validate() error {
	if e.Timeout != nil && *e.Timeout <= 0 {
		return fmt.Errorf("engine '%s': timeout must be positive", e.Name)
	}
	return nil
}

// StringList decodes either a YAML sequence of strings or a single
// comma-delimited scalar ("general, web") into a trimmed, ordered list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*l = out
		return nil
	case yaml.SequenceNode:
		var out []string
		if err := value.Decode(&out); err != nil {
			return err
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("categories must be a list or a comma-delimited string (line %d)", value.Line)
	}
}

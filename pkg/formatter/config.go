// Package formatter normalizes markup captured from a rendered component tree
// into clean, portable HTML. It strips runtime framework artifacts with a fixed
// sequence of text passes, re-derives indentation from the element tree, and
// offers small utility-class rewrites (dark variants, color tokens).
package formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ThemeConfig controls how dark-mode variants are added to utility classes.
type ThemeConfig struct {
	// Marker is the variant prefix added to qualifying class tokens.
	Marker string `json:"marker" yaml:"marker" mapstructure:"marker" validate:"required,endswith=:"`

	// Families are the utility-class roots eligible for the marker (bg, text, ...).
	Families []string `json:"families" yaml:"families" mapstructure:"families" validate:"required,min=1,dive,required,alpha"`

	// Exclude lists first segments after the family that mark a non-color
	// utility (border-t-4, text-xl, border-opacity-50).
	Exclude []string `json:"exclude" yaml:"exclude" mapstructure:"exclude" validate:"dive,required"`
}

// Config defines the formatter behavior.
type Config struct {
	// IndentUnit is repeated once per nesting level. Tabs or spaces only.
	IndentUnit string `json:"indent_unit" yaml:"indent_unit" mapstructure:"indent_unit" validate:"required,indent"`

	// DirectivePrefixes are attribute-name prefixes injected by the rendering
	// framework at runtime (ng-reflect-*, _ngcontent-*).
	DirectivePrefixes []string `json:"directive_prefixes" yaml:"directive_prefixes" mapstructure:"directive_prefixes" validate:"dive,required"`

	// === Sanitizer passes ===

	// StripDirectives removes framework directive attributes.
	StripDirectives bool `json:"strip_directives" yaml:"strip_directives" mapstructure:"strip_directives"`

	// StripBindingComments removes framework binding-debug comments.
	StripBindingComments bool `json:"strip_binding_comments" yaml:"strip_binding_comments" mapstructure:"strip_binding_comments"`

	// StripEmptyClasses removes class="" attributes.
	StripEmptyClasses bool `json:"strip_empty_classes" yaml:"strip_empty_classes" mapstructure:"strip_empty_classes"`

	// CollapseWhitespace trims one whitespace character on each side of text
	// sitting directly between two tags.
	CollapseWhitespace bool `json:"collapse_whitespace" yaml:"collapse_whitespace" mapstructure:"collapse_whitespace"`

	// === Export ===

	// ComponentName names the generated component in React exports.
	ComponentName string `json:"component_name" yaml:"component_name" mapstructure:"component_name" validate:"required,alphanum"`

	Theme ThemeConfig `json:"theme" yaml:"theme" mapstructure:"theme"`
}

// DefaultDirectivePrefixes are the attribute prefixes Angular adds in
// development builds.
var DefaultDirectivePrefixes = []string{"ng-", "_ngcontent-", "_nghost-"}

// DefaultThemeFamilies are the utility families that carry a color.
var DefaultThemeFamilies = []string{"bg", "border", "placeholder", "text", "from", "via", "to"}

// DefaultThemeExclude are first segments that make a family utility something
// other than a color: sides, sizes, alignment, styles, spacing, opacity.
var DefaultThemeExclude = []string{
	"opacity", "spacing",
	"t", "r", "b", "l", "x", "y", "s", "e",
	"xs", "sm", "base", "md", "lg", "xl",
	"left", "center", "right", "justify", "start", "end", "top", "bottom",
	"solid", "dashed", "dotted", "double", "hidden", "none",
	"collapse", "separate",
	"fixed", "local", "scroll", "clip", "origin", "repeat", "no", "auto", "cover", "contain",
	"gradient", "blend",
	"ellipsis", "wrap", "nowrap", "balance", "pretty",
}

// DefaultConfig returns the configuration used for Angular-rendered Tailwind
// markup: every sanitizer pass enabled and tab indentation.
func DefaultConfig() *Config {
	return &Config{
		IndentUnit:           "\t",
		DirectivePrefixes:    append([]string(nil), DefaultDirectivePrefixes...),
		StripDirectives:      true,
		StripBindingComments: true,
		StripEmptyClasses:    true,
		CollapseWhitespace:   true,
		ComponentName:        "Component",
		Theme: ThemeConfig{
			Marker:   "dark:",
			Families: append([]string(nil), DefaultThemeFamilies...),
			Exclude:  append([]string(nil), DefaultThemeExclude...),
		},
	}
}

// PresetMinimal keeps framework artifacts and only normalizes whitespace.
// Use it for markup that was not produced by a framework runtime.
func PresetMinimal() *Config {
	cfg := DefaultConfig()
	cfg.StripDirectives = false
	cfg.StripBindingComments = false
	cfg.StripEmptyClasses = false
	return cfg
}

// Preset returns a named preset: "default" or "minimal".
func Preset(name string) (*Config, error) {
	switch name {
	case "", "default":
		return DefaultConfig(), nil
	case "minimal":
		return PresetMinimal(), nil
	default:
		return nil, fmt.Errorf("unknown preset: %s (available: default, minimal)", name)
	}
}

// LoadConfig reads a JSON or YAML file on top of DefaultConfig.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FieldError describes one invalid configuration field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ConfigError is returned by Validate when one or more fields are invalid.
type ConfigError struct {
	Fields []FieldError
}

func (e *ConfigError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid formatter config: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("indent", func(fl validator.FieldLevel) bool {
		return strings.Trim(fl.Field().String(), " \t") == ""
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks the configuration and returns a *ConfigError on failure.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	cerr := &ConfigError{}
	for _, e := range verrs {
		cerr.Fields = append(cerr.Fields, FieldError{
			Field:   e.Namespace(),
			Message: formatValidationError(e),
		})
	}
	return cerr
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "endswith":
		return fmt.Sprintf("must end with %q", e.Param())
	case "alpha":
		return "must contain letters only"
	case "alphanum":
		return "must contain letters and digits only"
	case "indent":
		return "must contain only spaces or tabs"
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}

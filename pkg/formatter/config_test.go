package formatter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.IndentUnit != "\t" {
		t.Errorf("IndentUnit = %q, want tab", cfg.IndentUnit)
	}
	if !cfg.StripDirectives || !cfg.StripBindingComments || !cfg.StripEmptyClasses || !cfg.CollapseWhitespace {
		t.Error("expected every sanitizer pass enabled")
	}
	if cfg.Theme.Marker != "dark:" {
		t.Errorf("Theme.Marker = %q, want dark:", cfg.Theme.Marker)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	// Defaults must not share backing arrays with the package vars.
	cfg.DirectivePrefixes[0] = "x-"
	if DefaultDirectivePrefixes[0] != "ng-" {
		t.Error("DefaultConfig aliases DefaultDirectivePrefixes")
	}
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name      string
		wantStrip bool
		wantErr   bool
	}{
		{name: "", wantStrip: true},
		{name: "default", wantStrip: true},
		{name: "minimal", wantStrip: false},
		{name: "aggressive", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Preset(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown preset")
				}
				return
			}
			if err != nil {
				t.Fatalf("Preset() error = %v", err)
			}
			if cfg.StripDirectives != tt.wantStrip {
				t.Errorf("StripDirectives = %v, want %v", cfg.StripDirectives, tt.wantStrip)
			}
			if !cfg.CollapseWhitespace {
				t.Error("CollapseWhitespace should be enabled in every preset")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:      "empty indent",
			modify:    func(c *Config) { c.IndentUnit = "" },
			wantField: "IndentUnit",
		},
		{
			name:      "non-whitespace indent",
			modify:    func(c *Config) { c.IndentUnit = "--" },
			wantField: "IndentUnit",
		},
		{
			name:      "component name with spaces",
			modify:    func(c *Config) { c.ComponentName = "My Card" },
			wantField: "ComponentName",
		},
		{
			name:      "marker without colon",
			modify:    func(c *Config) { c.Theme.Marker = "dark" },
			wantField: "Marker",
		},
		{
			name:      "no families",
			modify:    func(c *Config) { c.Theme.Families = nil },
			wantField: "Families",
		},
		{
			name:      "family with digits",
			modify:    func(c *Config) { c.Theme.Families = []string{"bg2"} },
			wantField: "Families[0]",
		},
		{
			name:      "empty directive prefix",
			modify:    func(c *Config) { c.DirectivePrefixes = []string{"ng-", ""} },
			wantField: "DirectivePrefixes[1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigError, got %T", err)
			}
			if len(cerr.Fields) == 0 {
				t.Fatal("expected at least one field error")
			}
			if !strings.Contains(cerr.Fields[0].Field, tt.wantField) {
				t.Errorf("field = %q, want it to mention %q", cerr.Fields[0].Field, tt.wantField)
			}
			if !strings.HasPrefix(err.Error(), "invalid formatter config: ") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestConfig_ValidateSpaces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IndentUnit = "    "
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewValidator_IndentTag(t *testing.T) {
	v := newValidator()
	tests := []struct {
		unit    string
		wantErr bool
	}{
		{"\t", false},
		{"  ", false},
		{"\t ", false},
		{"x", true},
		{"\n", true},
	}

	for _, tt := range tests {
		err := v.Var(tt.unit, "indent")
		if (err != nil) != tt.wantErr {
			t.Errorf("Var(%q, indent) error = %v, wantErr %v", tt.unit, err, tt.wantErr)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("yaml", func(t *testing.T) {
		path := write("snipfmt.yaml", `
indent_unit: "  "
strip_empty_classes: false
component_name: Card
theme:
  marker: "night:"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.IndentUnit != "  " {
			t.Errorf("IndentUnit = %q", cfg.IndentUnit)
		}
		if cfg.StripEmptyClasses {
			t.Error("StripEmptyClasses should be false")
		}
		if !cfg.StripDirectives {
			t.Error("StripDirectives should keep its default")
		}
		if cfg.ComponentName != "Card" {
			t.Errorf("ComponentName = %q", cfg.ComponentName)
		}
		if cfg.Theme.Marker != "night:" {
			t.Errorf("Theme.Marker = %q", cfg.Theme.Marker)
		}
		if len(cfg.Theme.Families) != len(DefaultThemeFamilies) {
			t.Errorf("Theme.Families should keep defaults, got %v", cfg.Theme.Families)
		}
	})

	t.Run("json", func(t *testing.T) {
		path := write("snipfmt.json", `{"directive_prefixes": ["v-"], "collapse_whitespace": false}`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.DirectivePrefixes) != 1 || cfg.DirectivePrefixes[0] != "v-" {
			t.Errorf("DirectivePrefixes = %v", cfg.DirectivePrefixes)
		}
		if cfg.CollapseWhitespace {
			t.Error("CollapseWhitespace should be false")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := write("bad.yaml", "indent_unit: \"ab\"\n")
		_, err := LoadConfig(path)
		var cerr *ConfigError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected *ConfigError, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := write("snipfmt.toml", "indent_unit = \" \"\n")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected error for .toml")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

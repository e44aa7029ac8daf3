package formatter

import (
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("nil config uses default", func(t *testing.T) {
		f, err := New(nil)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if f.Config().IndentUnit != "\t" {
			t.Errorf("expected tab indent, got %q", f.Config().IndentUnit)
		}
		if len(f.Passes()) != 4 {
			t.Errorf("expected 4 passes, got %d", len(f.Passes()))
		}
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IndentUnit = "x"
		if _, err := New(cfg); err == nil {
			t.Fatal("expected error for non-whitespace indent unit")
		}
	})
}

func TestName(t *testing.T) {
	if got := Default().Name(); got != "formatter" {
		t.Errorf("expected name 'formatter', got '%s'", got)
	}
}

func TestBeautify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		level int
		want  string
	}{
		{
			name:  "nested elements",
			input: `<div><p>Hello</p></div>`,
			want:  "<div>\n\t<p>Hello</p>\n</div>",
		},
		{
			name: "angular output",
			input: `<div _ngcontent-c1="" class="">
  <!-- bindings={"ng-reflect-ng-if": "true"} -->
  <span class="text-coolGray-800" ng-reflect-ng-class="text-coolGray-800"> Hi </span>
</div>`,
			want: "<div>\n\t<span class=\"text-coolGray-800\">Hi</span>\n</div>",
		},
		{
			name:  "several roots",
			input: `<h1>A</h1><p>B</p>`,
			want:  "<h1>A</h1>\n<p>B</p>",
		},
		{
			name:  "start level",
			input: `<ul><li>a</li><li>b</li></ul>`,
			level: 1,
			want:  "<ul>\n\t\t<li>a</li>\n\t\t<li>b</li>\n\t</ul>",
		},
		{
			name:  "text only",
			input: `  just text  `,
			want:  `just text`,
		},
		{
			name:  "empty input",
			input: ``,
			want:  ``,
		},
		{
			name:  "malformed markup recovers",
			input: `<div><p>open<span>x</div>`,
			want:  "<div>\n\t<p>open\n\t\t<span>x</span>\n\t</p>\n</div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Beautify(tt.input, tt.level)
			if err != nil {
				t.Fatalf("Beautify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Beautify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBeautify_Idempotent(t *testing.T) {
	input := `<section class="p-4"><h2>Title</h2><ul><li><a href="/x">x</a></li><li>y</li></ul></section>`

	once, err := Beautify(input, 0)
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}
	twice, err := Beautify(once, 0)
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}
	if once != twice {
		t.Errorf("second Beautify changed output\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestClean(t *testing.T) {
	got, err := Default().Clean(`<div><p>a</p></div>`)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "<div>\n\t<p>a</p>\n</div>" {
		t.Errorf("Clean() = %q", got)
	}
}

func TestBeautifyWithStats(t *testing.T) {
	input := `<div class=""><p ng-reflect-x="1"> a </p><p>b</p></div>`

	result, err := Default().BeautifyWithStats(input, 0)
	if err != nil {
		t.Fatalf("BeautifyWithStats() error = %v", err)
	}

	s := result.Stats
	if s.InputBytes != len(input) {
		t.Errorf("InputBytes = %d, want %d", s.InputBytes, len(input))
	}
	if s.OutputBytes != len(result.Content) {
		t.Errorf("OutputBytes = %d, want %d", s.OutputBytes, len(result.Content))
	}
	if s.PassMatches[PassDirectives] != 1 {
		t.Errorf("directive matches = %d, want 1", s.PassMatches[PassDirectives])
	}
	if s.PassMatches[PassEmptyClass] != 1 {
		t.Errorf("empty class matches = %d, want 1", s.PassMatches[PassEmptyClass])
	}
	if s.PassMatches[PassWhitespace] != 1 {
		t.Errorf("whitespace matches = %d, want 1", s.PassMatches[PassWhitespace])
	}
	if s.TotalMatches() != 3 {
		t.Errorf("TotalMatches() = %d, want 3", s.TotalMatches())
	}
	if s.Elements != 3 {
		t.Errorf("Elements = %d, want 3", s.Elements)
	}
	// container: before div and closing; div: before each p and closing
	if s.IndentNodesAdded != 5 {
		t.Errorf("IndentNodesAdded = %d, want 5", s.IndentNodesAdded)
	}
	if result.HasWarnings() {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	summary := s.String()
	for _, want := range []string{"Size:", "directives=1", "Elements: 3"} {
		if !strings.Contains(summary, want) {
			t.Errorf("String() missing %q:\n%s", want, summary)
		}
	}
}

func TestBeautifyWithStats_TextOnlyWarns(t *testing.T) {
	result, err := Default().BeautifyWithStats("no markup here", 0)
	if err != nil {
		t.Fatalf("BeautifyWithStats() error = %v", err)
	}
	if !result.HasWarnings() {
		t.Fatal("expected a warning for a fragment without elements")
	}
	if result.Warnings[0].Phase != "parse" {
		t.Errorf("warning phase = %q, want parse", result.Warnings[0].Phase)
	}
	if !strings.Contains(result.Warnings[0].String(), "[parse]") {
		t.Errorf("Warning.String() = %q", result.Warnings[0].String())
	}
}

func TestFormatter_ConcurrentUse(t *testing.T) {
	f := Default()
	input := `<div><p>a</p><p>b</p></div>`
	want, err := f.Beautify(input, 0)
	if err != nil {
		t.Fatalf("Beautify() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.Beautify(input, 0)
			if err != nil || got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Beautify() = %q, want %q", got, want)
	}
}

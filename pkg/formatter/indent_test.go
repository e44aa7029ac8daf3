package formatter

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

// renderInner serializes the children of n.
func renderInner(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			t.Fatalf("render: %v", err)
		}
	}
	return buf.String()
}

func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := parseFragment(markup)
	if err != nil {
		t.Fatalf("parseFragment() error = %v", err)
	}
	return root
}

func TestReindent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		level int
		want  string
	}{
		{
			name:  "nested at level 0",
			input: `<div><p>a</p></div>`,
			level: 0,
			want:  "\n<div>\n\t<p>a</p>\n</div>\n",
		},
		{
			name:  "siblings do not accumulate levels",
			input: `<ul><li>a</li><li>b</li><li>c</li></ul>`,
			level: 0,
			want:  "\n<ul>\n\t<li>a</li>\n\t<li>b</li>\n\t<li>c</li>\n</ul>\n",
		},
		{
			name:  "deeper start level",
			input: `<div><p>a</p></div>`,
			level: 2,
			want:  "\n\t\t<div>\n\t\t\t<p>a</p>\n\t\t</div>\n\t",
		},
		{
			name:  "three levels",
			input: `<section><div><span>x</span></div></section>`,
			level: 0,
			want:  "\n<section>\n\t<div>\n\t\t<span>x</span>\n\t</div>\n</section>\n",
		},
		{
			name:  "replaces source formatting",
			input: "<div>\n      <p>a</p>   \n</div>",
			level: 0,
			want:  "\n<div>\n\t<p>a</p>\n</div>\n",
		},
		{
			name:  "mixed text keeps its words",
			input: `<p>Hello <b>x</b> world</p>`,
			level: 0,
			want:  "\n<p>Hello \n\t<b>x</b> world\n</p>\n",
		},
		{
			name:  "preformatted content untouched",
			input: "<div><pre><b>a</b>\n  <i>b</i></pre></div>",
			level: 0,
			want:  "\n<div>\n\t<pre><b>a</b>\n  <i>b</i></pre>\n</div>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.input)
			if got := Reindent(root, tt.level); got != root {
				t.Fatal("Reindent should return the node it was given")
			}
			if got := renderInner(t, root); got != tt.want {
				t.Errorf("Reindent() rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReindent_NoElementChildren(t *testing.T) {
	for _, input := range []string{`plain text`, `  spaced  `, `<!-- c -->text`} {
		root := mustParse(t, input)
		before := renderInner(t, root)

		var kids int
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			kids++
		}

		in := NewIndenter("\t")
		in.Reindent(root, 3)

		var after int
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			after++
		}
		if after != kids {
			t.Errorf("%q: child count changed from %d to %d", input, kids, after)
		}
		if got := renderInner(t, root); got != before {
			t.Errorf("%q: rendered %q, want %q", input, got, before)
		}
		if in.Inserted() != 0 || in.Removed() != 0 {
			t.Errorf("%q: expected no node changes, got +%d -%d", input, in.Inserted(), in.Removed())
		}
	}
}

func TestReindent_Idempotent(t *testing.T) {
	inputs := []string{
		`<div><p>a</p><p>b</p></div>`,
		`<ul><li><a href="#">x</a></li><li>y</li></ul><footer><span>z</span></footer>`,
		`<p>Hello <b>x</b> world</p>`,
	}

	for _, input := range inputs {
		for _, level := range []int{0, 1, 3} {
			root := mustParse(t, input)
			Reindent(root, level)
			first := renderInner(t, root)

			Reindent(root, level)
			second := renderInner(t, root)

			if first != second {
				t.Errorf("level %d %q: second pass changed output\nfirst:  %q\nsecond: %q", level, input, first, second)
			}
		}
	}
}

func TestReindent_PreservesStructure(t *testing.T) {
	input := `<div id="a" class="x y"><span data-k="v">t</span><img src="i.png"></div>`
	root := mustParse(t, input)
	Reindent(root, 0)

	// Removing the inserted whitespace must give back the original markup.
	got := strings.NewReplacer("\n", "", "\t", "").Replace(renderInner(t, root))
	want := `<div id="a" class="x y"><span data-k="v">t</span><img src="i.png"/></div>`
	if got != want {
		t.Errorf("structure changed: got %q, want %q", got, want)
	}
}

func TestIndenter_CustomUnit(t *testing.T) {
	root := mustParse(t, `<div><p>a</p></div>`)
	in := NewIndenter("  ")
	in.Reindent(root, 1)

	want := "\n  <div>\n    <p>a</p>\n  </div>\n"
	if got := renderInner(t, root); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
	if in.Inserted() != 4 {
		t.Errorf("Inserted() = %d, want 4", in.Inserted())
	}
}

func TestLastElementChild(t *testing.T) {
	root := mustParse(t, `<a></a>text<b></b> tail`)
	last := lastElementChild(root)
	if last == nil || last.Data != "b" {
		t.Fatalf("lastElementChild() = %v, want <b>", last)
	}
	if lastElementChild(last) != nil {
		t.Error("expected nil for a node without element children")
	}
}

// Package syntax re-emits beautified markup as source for other view
// templating syntaxes: Vue single-file templates, React function and class
// components, and Markdown.
package syntax

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/formatter"
)

// Target names of the built-in adapters.
const (
	TargetHTML       = "html"
	TargetVue        = "vue"
	TargetReact      = "react"
	TargetReactClass = "react-class"
	TargetMarkdown   = "markdown"
)

// ErrUnknownTarget is returned by Export for an unregistered target name.
var ErrUnknownTarget = errors.New("unknown export target")

// Exporter wraps a Formatter and converts raw captured markup into target
// syntaxes.
type Exporter struct {
	f *formatter.Formatter
}

// New creates an Exporter. If f is nil, formatter.Default() is used.
func New(f *formatter.Formatter) *Exporter {
	if f == nil {
		f = formatter.Default()
	}
	return &Exporter{f: f}
}

func (e *Exporter) unit() string {
	return e.f.Config().IndentUnit
}

func (e *Exporter) component() string {
	return e.f.Config().ComponentName
}

// ToHTML returns the beautified markup.
func (e *Exporter) ToHTML(markup string) (string, error) {
	return e.f.Beautify(markup, 0)
}

// ToVue wraps the beautified markup in a <template> block, one level deep.
func (e *Exporter) ToVue(markup string) (string, error) {
	body, err := e.f.Beautify(markup, 1)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("<template>\n")
	sb.WriteString(e.unit() + body + "\n")
	sb.WriteString("</template>")
	return sb.String(), nil
}

// ToReactFunctional wraps the beautified markup, two levels deep, in the
// return block of a function component and translates attributes to JSX.
func (e *Exporter) ToReactFunctional(markup string) (string, error) {
	body, err := e.f.Beautify(markup, 2)
	if err != nil {
		return "", err
	}

	u := e.unit()
	var sb strings.Builder
	sb.WriteString("const " + e.component() + " = (props) => {\n")
	sb.WriteString(u + "return (\n")
	sb.WriteString(u + u + body + "\n")
	sb.WriteString(u + ");\n")
	sb.WriteString("};")
	return UseReactSyntax(sb.String()), nil
}

// ToReactClass wraps the raw markup in the render method of a class
// component, beautifies the whole block three levels deep and translates
// attributes to JSX.
func (e *Exporter) ToReactClass(markup string) (string, error) {
	u := e.unit()
	var sb strings.Builder
	sb.WriteString("class " + e.component() + " extends React.Component {\n")
	sb.WriteString(u + "render() {\n")
	sb.WriteString(u + u + "return (")
	sb.WriteString(strings.TrimSpace(markup))
	sb.WriteString("\n" + u + u + ");\n")
	sb.WriteString(u + "}\n")
	sb.WriteString("}")

	body, err := e.f.Beautify(sb.String(), 3)
	if err != nil {
		return "", err
	}
	return UseReactSyntax(body), nil
}

// ToMarkdown converts the sanitized markup to Markdown.
func (e *Exporter) ToMarkdown(markup string) (string, error) {
	md, err := htmltomarkdown.ConvertString(e.f.Sanitize(markup))
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// Export converts markup into the named target.
func (e *Exporter) Export(target, markup string) (string, error) {
	fn, ok := lookup(target)
	if !ok {
		return "", fmt.Errorf("%w: %s (available: %s)", ErrUnknownTarget, target, strings.Join(Available(), ", "))
	}
	logger.Debug("export", "target", target, "input_bytes", len(markup))
	return fn(e, markup)
}

// TargetFunc converts markup into one target syntax.
type TargetFunc func(e *Exporter, markup string) (string, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]TargetFunc{}
)

func init() {
	Register(TargetHTML, (*Exporter).ToHTML)
	Register(TargetVue, (*Exporter).ToVue)
	Register(TargetReact, (*Exporter).ToReactFunctional)
	Register(TargetReactClass, (*Exporter).ToReactClass)
	Register(TargetMarkdown, (*Exporter).ToMarkdown)
}

// Register adds or replaces a target.
func Register(name string, fn TargetFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

func lookup(name string) (TargetFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// Available returns the registered target names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToVue converts markup with the default formatter.
func ToVue(markup string) (string, error) {
	return New(nil).ToVue(markup)
}

// ToReactFunctional converts markup with the default formatter.
func ToReactFunctional(markup string) (string, error) {
	return New(nil).ToReactFunctional(markup)
}

// ToReactClass converts markup with the default formatter.
func ToReactClass(markup string) (string, error) {
	return New(nil).ToReactClass(markup)
}

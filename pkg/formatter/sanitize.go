package formatter

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jmylchreest/snipfmt/internal/logger"
	"github.com/jmylchreest/snipfmt/pkg/cleaner"
)

// Pass names, in the order the sanitizer applies them.
const (
	PassDirectives = "directives"
	PassComments   = "binding-comments"
	PassEmptyClass = "empty-classes"
	PassWhitespace = "tag-whitespace"
)

var (
	// bindingCommentRegex matches a binding dump such as
	// <!--bindings={"ng-reflect-ng-if": "true"}--> or an empty <!----> anchor,
	// together with the whitespace around it. [^<>] keeps it inside one comment.
	// See stripBindingComments for how that whitespace is put back.
	bindingCommentRegex = regexp.MustCompile(`\s*<!--(?:\s*(?:bindings=)?\{[^<>]*\}\s*)?-->\s*`)

	emptyClassRegex = regexp.MustCompile(`\s+class=""`)

	tagWhitespaceRegex = regexp.MustCompile(`>\s([^<]*)\s<`)
)

// Pass is a single named text rewrite of the sanitizer.
type Pass struct {
	name        string
	re          *regexp.Regexp
	replacement string
	rewrite     func(markup string) (string, int)
}

// Name returns the pass name.
func (p *Pass) Name() string {
	return p.name
}

// Apply rewrites markup and reports how many matches were replaced.
// A pass that does not match returns its input unchanged.
func (p *Pass) Apply(markup string) (string, int) {
	if p.rewrite != nil {
		return p.rewrite(markup)
	}
	if p.re == nil {
		return markup, 0
	}
	n := len(p.re.FindAllStringIndex(markup, -1))
	if n == 0 {
		return markup, 0
	}
	return p.re.ReplaceAllString(markup, p.replacement), n
}

// Cleaner adapts the pass to the cleaner.Cleaner interface.
func (p *Pass) Cleaner() cleaner.Cleaner {
	return cleaner.NewFunc(p.name, func(markup string) string {
		out, _ := p.Apply(markup)
		return out
	})
}

func directivePass(prefixes []string) *Pass {
	p := &Pass{name: PassDirectives}
	if len(prefixes) == 0 {
		return p
	}
	quoted := make([]string, len(prefixes))
	for i, prefix := range prefixes {
		quoted[i] = regexp.QuoteMeta(prefix)
	}
	// The attribute must start after whitespace and carry a quoted value, so a
	// prefix appearing inside some other attribute's value never matches.
	p.re = regexp.MustCompile(`\s+(?:` + strings.Join(quoted, "|") + `)[^\s"'=<>/]*="[^"]*"`)
	return p
}

func commentPass() *Pass {
	return &Pass{name: PassComments, re: bindingCommentRegex, rewrite: stripBindingComments}
}

// stripBindingComments drops every binding comment. Adjacent comments are
// handled as one run. The whitespace around a run is removed only when tags or
// the input edges sit on both sides; otherwise it collapses to a single space
// so neighbouring words stay apart.
func stripBindingComments(markup string) (string, int) {
	locs := bindingCommentRegex.FindAllStringIndex(markup, -1)
	if len(locs) == 0 {
		return markup, 0
	}

	var sb strings.Builder
	sb.Grow(len(markup))
	last := 0
	for i := 0; i < len(locs); {
		start, end := locs[i][0], locs[i][1]
		spaced := hasOuterSpace(markup[start:end])
		for i++; i < len(locs) && locs[i][0] == end; i++ {
			end = locs[i][1]
			spaced = spaced || hasOuterSpace(markup[locs[i][0]:end])
		}

		sb.WriteString(markup[last:start])
		betweenTags := tagBoundary(markup, start-1, '>') && tagBoundary(markup, end, '<')
		if spaced && !betweenTags {
			sb.WriteByte(' ')
		}
		last = end
	}
	sb.WriteString(markup[last:])
	return sb.String(), len(locs)
}

// hasOuterSpace reports whether a matched comment carried whitespace on either
// side of it.
func hasOuterSpace(match string) bool {
	return strings.TrimLeftFunc(match, unicode.IsSpace) != match ||
		strings.TrimRightFunc(match, unicode.IsSpace) != match
}

// tagBoundary reports whether markup[i] is the given tag delimiter or i lies
// outside the input.
func tagBoundary(markup string, i int, delim byte) bool {
	return i < 0 || i >= len(markup) || markup[i] == delim
}

func emptyClassPass() *Pass {
	return &Pass{name: PassEmptyClass, re: emptyClassRegex}
}

func whitespacePass() *Pass {
	return &Pass{name: PassWhitespace, re: tagWhitespaceRegex, replacement: ">$1<"}
}

// buildPasses returns the enabled passes in their fixed order.
func buildPasses(cfg *Config) []*Pass {
	var passes []*Pass
	if cfg.StripDirectives {
		passes = append(passes, directivePass(cfg.DirectivePrefixes))
	}
	if cfg.StripBindingComments {
		passes = append(passes, commentPass())
	}
	if cfg.StripEmptyClasses {
		passes = append(passes, emptyClassPass())
	}
	if cfg.CollapseWhitespace {
		passes = append(passes, whitespacePass())
	}
	return passes
}

// sanitize runs every enabled pass, recording matches into stats when given.
func (f *Formatter) sanitize(markup string, stats *Stats) string {
	for _, p := range f.passes {
		before := len(markup)
		var n int
		markup, n = p.Apply(markup)
		if stats != nil {
			stats.RecordPass(p.name, n)
		}
		logger.Debug("sanitize pass", "pass", p.name, "matches", n, "bytes_in", before, "bytes_out", len(markup))
	}
	return markup
}

// Sanitize removes framework artifacts and normalizes tag whitespace.
// The passes run in a fixed order: directive attributes, binding comments,
// empty class attributes, tag-adjacent whitespace.
func (f *Formatter) Sanitize(markup string) string {
	return f.sanitize(markup, nil)
}

// Sanitizer returns the enabled passes as a chain, for composition with other
// cleaners. With every pass disabled the chain holds a single no-op cleaner.
func (f *Formatter) Sanitizer() *cleaner.ChainCleaner {
	if len(f.passes) == 0 {
		return cleaner.NewChain(cleaner.NewNoop())
	}
	cleaners := make([]cleaner.Cleaner, len(f.passes))
	for i, p := range f.passes {
		cleaners[i] = p.Cleaner()
	}
	return cleaner.NewChain(cleaners...)
}

// Passes returns the enabled sanitizer passes in application order.
func (f *Formatter) Passes() []*Pass {
	return append([]*Pass(nil), f.passes...)
}

var defaultDirectivePass = directivePass(DefaultDirectivePrefixes)

// StripDirectiveAttributes removes attributes whose name starts with one of
// the default directive prefixes, e.g. ng-reflect-ng-class="...".
func StripDirectiveAttributes(markup string) string {
	out, _ := defaultDirectivePass.Apply(markup)
	return out
}

// StripBindingComments removes framework binding-debug comments, single or
// multi-line. Surrounding whitespace is dropped between tags and kept as one
// space between text.
func StripBindingComments(markup string) string {
	out, _ := commentPass().Apply(markup)
	return out
}

// StripEmptyClasses removes class="" attributes. Non-empty class attributes
// are never touched.
func StripEmptyClasses(markup string) string {
	out, _ := emptyClassPass().Apply(markup)
	return out
}

// CollapseTagWhitespace strips exactly one whitespace character on each side
// of text sitting between two tags: <span> A </span> becomes <span>A</span>.
func CollapseTagWhitespace(markup string) string {
	out, _ := whitespacePass().Apply(markup)
	return out
}

package syntax

import (
	"regexp"
	"sort"
	"strings"
)

// AttributeRules describes how attribute names translate into a target syntax.
type AttributeRules struct {
	// CamelCaseProps are presentation-attribute roots whose hyphenated form
	// is folded to camel case: stroke-width becomes strokeWidth.
	CamelCaseProps []string

	// Rename maps attribute names to their target-syntax names.
	Rename map[string]string
}

// ReactAttributes are the JSX attribute rules.
var ReactAttributes = AttributeRules{
	CamelCaseProps: []string{"stroke", "fill", "clip"},
	Rename: map[string]string{
		"class": "className",
		"for":   "htmlFor",
	},
}

type rename struct {
	re *regexp.Regexp
	to string
}

// AttributeTranslator applies AttributeRules to markup. Only attribute-name
// positions are rewritten: the name must follow whitespace and be followed by
// "=", so class values and text content are left alone.
type AttributeTranslator struct {
	camel   *regexp.Regexp
	renames []rename
}

// NewAttributeTranslator compiles rules.
func NewAttributeTranslator(rules AttributeRules) *AttributeTranslator {
	t := &AttributeTranslator{}

	if len(rules.CamelCaseProps) > 0 {
		props := make([]string, len(rules.CamelCaseProps))
		for i, p := range rules.CamelCaseProps {
			props[i] = regexp.QuoteMeta(p)
		}
		t.camel = regexp.MustCompile(`(\s)(` + strings.Join(props, "|") + `)-([a-z])([\w-]*=)`)
	}

	// Sorted for deterministic output when renames chain into each other.
	names := make([]string, 0, len(rules.Rename))
	for from := range rules.Rename {
		names = append(names, from)
	}
	sort.Strings(names)
	for _, from := range names {
		t.renames = append(t.renames, rename{
			re: regexp.MustCompile(`(\s)` + regexp.QuoteMeta(from) + `=`),
			to: rules.Rename[from],
		})
	}
	return t
}

// Translate rewrites attribute names in markup.
func (t *AttributeTranslator) Translate(markup string) string {
	if t.camel != nil {
		markup = t.camel.ReplaceAllStringFunc(markup, func(m string) string {
			sub := t.camel.FindStringSubmatch(m)
			return sub[1] + sub[2] + strings.ToUpper(sub[3]) + sub[4]
		})
	}
	for _, r := range t.renames {
		markup = r.re.ReplaceAllString(markup, "${1}"+r.to+"=")
	}
	return markup
}

var reactTranslator = NewAttributeTranslator(ReactAttributes)

// UseReactSyntax folds SVG presentation attributes to camel case and renames
// class and for to className and htmlFor.
func UseReactSyntax(markup string) string {
	return reactTranslator.Translate(markup)
}

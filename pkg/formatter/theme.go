package formatter

import (
	"regexp"
	"strings"
)

var (
	classAttrRegex  = regexp.MustCompile(`(\s)(class|className)=(?:"([^"]*)"|'([^']*)')`)
	classTokenRegex = regexp.MustCompile(`\S+`)
)

// variantRules decides which class tokens receive the theme marker.
type variantRules struct {
	marker   string
	variant  string
	families map[string]bool
	exclude  map[string]bool
}

func newVariantRules(cfg ThemeConfig) *variantRules {
	r := &variantRules{
		marker:   cfg.Marker,
		variant:  strings.TrimSuffix(cfg.Marker, ":"),
		families: make(map[string]bool, len(cfg.Families)),
		exclude:  make(map[string]bool, len(cfg.Exclude)),
	}
	for _, f := range cfg.Families {
		r.families[f] = true
	}
	for _, e := range cfg.Exclude {
		r.exclude[e] = true
	}
	return r
}

// qualifies reports whether a class token is a color utility of one of the
// configured families that does not already carry the variant.
//
// bg-black, border-red-500 and placeholder-coolGray-300 qualify;
// border-t-4, border-opacity-50, text-xl and text-2xl do not.
func (r *variantRules) qualifies(token string) bool {
	utility := token
	if i := strings.LastIndexByte(token, ':'); i >= 0 {
		for _, v := range strings.Split(token[:i], ":") {
			if v == r.variant {
				return false
			}
		}
		utility = token[i+1:]
	}

	family, rest, ok := strings.Cut(utility, "-")
	if !ok || !r.families[family] {
		return false
	}
	segment, _, _ := strings.Cut(rest, "-")
	if segment == "" || !isLetters(segment) {
		return false
	}
	return !r.exclude[segment]
}

func (r *variantRules) apply(classes string) string {
	return classTokenRegex.ReplaceAllStringFunc(classes, func(token string) string {
		if r.qualifies(token) {
			return r.marker + token
		}
		return token
	})
}

func isLetters(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ToggleThemeVariant adds the theme marker to color utilities inside class
// attributes, double or single quoted, when enable is true. When enable is
// false every occurrence of the marker is removed, wherever it appears.
func (f *Formatter) ToggleThemeVariant(markup string, enable bool) string {
	if !enable {
		return strings.ReplaceAll(markup, f.theme.marker, "")
	}
	return classAttrRegex.ReplaceAllStringFunc(markup, func(attr string) string {
		m := classAttrRegex.FindStringSubmatch(attr)
		if strings.HasSuffix(attr, "'") {
			return m[1] + m[2] + `='` + f.theme.apply(m[4]) + `'`
		}
		return m[1] + m[2] + `="` + f.theme.apply(m[3]) + `"`
	})
}

// ToggleThemeVariant toggles dark: variants with the default families.
func ToggleThemeVariant(markup string, enable bool) string {
	return defaultFormatter.ToggleThemeVariant(markup, enable)
}

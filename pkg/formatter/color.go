package formatter

import "strings"

// ReplaceColor replaces the first color token -oldColor with -newColor.
// The token must be followed by a hyphen (bg-blue-500), a class separator or
// the end of the input (bg-black"), so bg-blueGray-500 never matches "blue".
// Only the first occurrence is replaced.
func ReplaceColor(markup, oldColor, newColor string) string {
	if oldColor == "" || oldColor == newColor {
		return markup
	}
	token := "-" + oldColor
	for from := 0; from < len(markup); {
		i := strings.Index(markup[from:], token)
		if i < 0 {
			break
		}
		start := from + i
		end := start + len(token)
		if colorBoundary(markup, end) {
			return markup[:start+1] + newColor + markup[end:]
		}
		from = start + 1
	}
	return markup
}

// colorBoundary reports whether a color name ending at i is complete.
func colorBoundary(markup string, i int) bool {
	if i >= len(markup) {
		return true
	}
	switch markup[i] {
	case '-', '"', '\'', '/', ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

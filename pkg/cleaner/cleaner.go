// Package cleaner provides the composable pipeline abstraction for markup
// rewrites. Each stage takes markup text and returns new markup text.
package cleaner

// Cleaner transforms markup into a cleaner form.
type Cleaner interface {
	// Clean transforms the input markup. Implementations never modify shared
	// state, so a Cleaner may be reused across calls.
	Clean(markup string) (string, error)

	// Name returns the cleaner type for logging/debugging.
	Name() string
}

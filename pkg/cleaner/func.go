package cleaner

// FuncCleaner adapts a total string rewrite to the Cleaner interface.
type FuncCleaner struct {
	name string
	fn   func(string) string
}

// NewFunc wraps fn as a named cleaner. fn must not fail; a rewrite that does
// not apply returns its input.
func NewFunc(name string, fn func(string) string) *FuncCleaner {
	return &FuncCleaner{name: name, fn: fn}
}

// Clean applies the wrapped rewrite.
func (c *FuncCleaner) Clean(markup string) (string, error) {
	return c.fn(markup), nil
}

// Name returns the rewrite name.
func (c *FuncCleaner) Name() string {
	return c.name
}

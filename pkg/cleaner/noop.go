package cleaner

// NoopCleaner passes markup through without modification.
// Use it where a stage is configured off but a Cleaner is still required.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the input unchanged.
func (c *NoopCleaner) Clean(markup string) (string, error) {
	return markup, nil
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}

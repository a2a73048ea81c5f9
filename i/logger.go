// Package i holds general-purpose interfaces shared across the whole
// application, independent of any service-layer contract.
package i

// Logger writes leveled, component-tagged log lines.
type Logger interface {
	// Debug records fine-grained per-step detail, such as individual
	// mouse decisions or search expansions.
	Debug(string)

	// Info records normal operational events.
	Info(string)

	// Warning records recoverable anomalies.
	Warning(string)

	// Error records failures that need operator attention.
	Error(string)
}

// NopLogger discards everything. Constructors fall back to it when no
// logger is injected, so per-step logging stays optional.
type NopLogger struct{}

func (NopLogger) Debug(string)   {}
func (NopLogger) Info(string)    {}
func (NopLogger) Warning(string) {}
func (NopLogger) Error(string)   {}

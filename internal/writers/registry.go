// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"rfold/internal/ensemble"
)

// Factory starts a writer goroutine consuming ensemble results.
type Factory interface {
	Start(out io.Writer, bufSize int) (chan<- ensemble.Result, <-chan error)
}

// Registry maps output format names to factory constructors. Writer files
// register themselves in init().
var registry = map[string]func(header, trace bool) Factory{}

// Register installs a format handler (last registration wins).
func Register(format string, fn func(header, trace bool) Factory) {
	registry[format] = fn
}

// New resolves a format name into a writer factory.
func New(format string, header, trace bool) (Factory, error) {
	fn, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(header, trace), nil
}

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

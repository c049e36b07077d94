package compiler

import (
	"sort"
)

// DefaultBackend is the backend key used when grammar has no @preprocessor directive.
const DefaultBackend = "_default"

// Backend renders compiled grammar as source text.
type Backend interface {
	Render(c *Compiler, exportName string) ([]byte, error)
}

var backends = map[string]Backend{}

// RegisterBackend makes backend available for @preprocessor directive under specified key.
// Existing entry with the same key is replaced.
func RegisterBackend(key string, b Backend) {
	backends[key] = b
}

// LookupBackend returns registered backend.
func LookupBackend(key string) (Backend, bool) {
	b, found := backends[key]
	return b, found
}

// Backends returns sorted list of registered backend keys.
func Backends() []string {
	res := make([]string, 0, len(backends))
	for key := range backends {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

// Generate renders compiled grammar. If b is nil the backend is selected by @preprocessor
// directive, DefaultBackend is used if there is none.
func (c *Compiler) Generate(exportName string, b Backend) ([]byte, error) {
	if c.Config.Preprocessor == "" {
		c.Config.Preprocessor = DefaultBackend
	}

	if b == nil {
		found := false
		b, found = LookupBackend(c.Config.Preprocessor)
		if !found {
			return nil, unknownBackendError(c.Config.Preprocessor)
		}
	}

	return b.Render(c, exportName)
}

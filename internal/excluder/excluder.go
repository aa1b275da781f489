package excluder

import (
	"github.com/gobwas/glob"
)

// Excluder matches experiment names against a list of glob patterns.
type Excluder struct {
	globs []glob.Glob
}

// New creates an Excluder from a list of glob patterns.
// An empty list excludes nothing.
func New(patterns []string) (*Excluder, error) {
	var globs []glob.Glob
	for _, pat := range patterns {
		g, err := glob.Compile(pat)
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return &Excluder{globs: globs}, nil
}

// IsExcluded returns true if the experiment name matches any exclude pattern.
func (e *Excluder) IsExcluded(name string) bool {
	if e == nil {
		return false
	}
	for _, g := range e.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

package pathutils

import (
	"path/filepath"
	"strings"
)

// RepositoryPathNormalizer turns configured repository paths into usable filesystem paths.
type RepositoryPathNormalizer struct {
	homeExpander *HomeExpander
	fallbackPath string
}

// NewRepositoryPathNormalizer constructs a normalizer. A nil expander uses the operating system
// home directory; fallbackPath replaces blank input.
func NewRepositoryPathNormalizer(homeExpander *HomeExpander, fallbackPath string) *RepositoryPathNormalizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &RepositoryPathNormalizer{homeExpander: homeExpander, fallbackPath: fallbackPath}
}

// Normalize trims whitespace, expands a leading tilde, and cleans the result.
func (normalizer *RepositoryPathNormalizer) Normalize(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		trimmedPath = normalizer.fallbackPath
	}
	if len(trimmedPath) == 0 {
		return trimmedPath
	}
	return filepath.Clean(normalizer.homeExpander.Expand(trimmedPath))
}

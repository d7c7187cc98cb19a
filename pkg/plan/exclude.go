package plan

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Excluder matches slash-separated relative paths against exclude patterns.
// Patterns support:
//   - Glob patterns on the base name: *.tmp, .DS_Store
//   - Directory patterns: .thumbnails/, MISC/
//   - Path patterns with doublestar: DCIM/**/*.thm, **/cache/*
type Excluder struct {
	patterns []string
}

// NewExcluder validates patterns and builds an excluder
func NewExcluder(patterns []string) (*Excluder, error) {
	var out []string
	for _, p := range patterns {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(strings.TrimSuffix(p, "/")) {
			return nil, &PatternError{Pattern: p}
		}
		out = append(out, p)
	}
	return &Excluder{patterns: out}, nil
}

// PatternError reports an invalid exclude pattern
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return "invalid exclude pattern: " + e.Pattern
}

// Match reports whether rel is excluded. isDir marks directory paths.
func (e *Excluder) Match(rel string, isDir bool) bool {
	if e == nil {
		return false
	}
	base := path.Base(rel)

	for _, pattern := range e.patterns {
		if strings.HasSuffix(pattern, "/") {
			// Directory patterns only prune directories; files below are
			// never reached by the walk.
			if !isDir {
				continue
			}
			dirPattern := strings.TrimSuffix(pattern, "/")
			if matchPath(dirPattern, rel) || matchName(dirPattern, base) {
				return true
			}
			continue
		}

		if strings.Contains(pattern, "/") {
			if matchPath(pattern, rel) {
				return true
			}
			continue
		}

		if matchName(pattern, base) {
			return true
		}
	}
	return false
}

func matchPath(pattern, rel string) bool {
	ok, _ := doublestar.Match(pattern, rel)
	return ok
}

func matchName(pattern, name string) bool {
	ok, _ := doublestar.Match(pattern, name)
	return ok
}

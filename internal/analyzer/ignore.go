package analyzer

import "strings"

// ShouldIgnore reports whether path matches any of patterns.
//
// Patterns are evaluated in order and the first match wins. A pattern that
// starts with '*' matches when path ends with the rest of the pattern; any
// other pattern matches when it appears anywhere in path. Matching is plain
// substring containment and is not aware of path segments, so "build" also
// excludes "rebuild.go".
func ShouldIgnore(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "*") {
			if strings.HasSuffix(path, pattern[1:]) {
				return true
			}
			continue
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

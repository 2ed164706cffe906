// Package xregexp provides helpers to extract regexp submatches.
package xregexp

import "regexp"

// Submatches returns the text of every capturing group of the leftmost match
// of re in s, the whole match excluded. ok is false when re does not match.
func Submatches(re *regexp.Regexp, s string) (groups []string, ok bool) {
	matches := re.FindStringSubmatch(s)
	if matches == nil {
		return nil, false
	}
	return matches[1:], true
}

// NamedSubmatches returns the text of the named capturing groups of the
// leftmost match of re in s, or nil when re does not match.
func NamedSubmatches(re *regexp.Regexp, s string) map[string]string {
	matches := re.FindStringSubmatch(s)
	if matches == nil {
		return nil
	}
	named := make(map[string]string)
	for i, name := range re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		named[name] = matches[i]
	}
	return named
}

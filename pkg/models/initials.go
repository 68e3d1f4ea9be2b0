package models

import "strings"

// NormalizeInitials uppercases a user key and reports whether it is a valid
// three-letter identifier.
func NormalizeInitials(initials string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(initials))
	if len(upper) != 3 {
		return "", false
	}
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	return upper, true
}

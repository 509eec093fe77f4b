package domain

import "strings"

// CoalesceField returns the name and value of the first non-nil, non-blank
// pointer. fields and names are parallel; ok is false when nothing is set.
func CoalesceField(names []string, fields ...*string) (name, value string, ok bool) {
	for i, f := range fields {
		if f != nil && strings.TrimSpace(*f) != "" {
			return names[i], strings.TrimSpace(*f), true
		}
	}
	return "", "", false
}

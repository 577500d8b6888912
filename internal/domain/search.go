package domain

import "strings"

// NormalizeQuery trims and lowercases a name query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// FullName joins the four name parts of e with single spaces, using an empty
// string for missing parts, and trims the result.
func (e *Employee) FullName() string {
	return strings.TrimSpace(strings.Join([]string{
		e.FirstName,
		valueOrEmpty(e.MiddleName),
		e.LastName,
		valueOrEmpty(e.SecondLastName),
	}, " "))
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MatchesName reports whether e's full name contains query, ignoring case.
// An empty query matches nothing.
func MatchesName(e *Employee, query string) bool {
	q := NormalizeQuery(query)
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(e.FullName()), q)
}

// FilterByName returns the employees whose name matches query, preserving
// order. The result is never nil.
func FilterByName(employees []*Employee, query string) []*Employee {
	matches := make([]*Employee, 0)
	if NormalizeQuery(query) == "" {
		return matches
	}
	for _, e := range employees {
		if MatchesName(e, query) {
			matches = append(matches, e)
		}
	}
	return matches
}

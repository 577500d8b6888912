package domain

import "strings"

// Normalize trims surrounding whitespace from every text field of e in place.
// Nil fields stay nil.
func Normalize(e *Employee) {
	if e == nil {
		return
	}
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.MiddleName = trimPtr(e.MiddleName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.SecondLastName = trimPtr(e.SecondLastName)
	e.Sex = trimPtr(e.Sex)
	e.Position = trimPtr(e.Position)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

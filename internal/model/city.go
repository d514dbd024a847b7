package model

import "strings"

// City represents an entry of the city catalog
type City struct {
	ID       int    `db:"id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

// CityMatches reports whether name contains query, ignoring case. Case is
// folded over all Unicode letters, not only ASCII.
func CityMatches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

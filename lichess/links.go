package lichess

import (
	"fmt"
	"regexp"
)

// DefaultHost is the production Lichess instance.
const DefaultHost = "https://lichess.org"

// Game URLs have an 8-character alphanumeric game id, optionally suffixed
// with the side the link opens on, e.g. https://lichess.org/abcd1234/white.
var gameURLPattern = regexp.MustCompile(`^https://lichess\.org/[A-Za-z0-9]{8}(/(white|black))?$`)

// ValidGameURL reports whether raw has the canonical game-URL shape.
// Anything else must not be stored as a match's game link.
func ValidGameURL(raw string) bool {
	return gameURLPattern.MatchString(raw)
}

// ProfileURL returns the public profile page for a username.
func ProfileURL(username string) string {
	return fmt.Sprintf("%s/@/%s", DefaultHost, username)
}

package fixtures

import "github.com/lbarasti/chess-social/models"

// Complete reports whether every match of the set has a recorded result.
// A tournament with no matches is never complete.
//
// The completion flag persisted on a tournament is only a cache of this
// computation: callers must recompute it from a fresh read of the full match
// set after every match mutation, in either direction, rather than keep
// incremental counters.
func Complete(matches []models.Match) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if m.Result == nil {
			return false
		}
	}
	return true
}

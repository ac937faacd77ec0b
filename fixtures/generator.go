package fixtures

import "github.com/lbarasti/chess-social/models"

// GenerateParams carries everything a generator needs to produce the full
// fixture list of a tournament.
type GenerateParams struct {
	PlayerIDs []string // ordered, distinct, already normalized
	Rounds    int
}

// Generator produces the match list for a tournament. Generation happens
// exactly once, at tournament creation: matches are never added or
// reassigned afterwards.
type Generator interface {
	Generate(params GenerateParams) ([]models.Match, error)

	Name() string
}

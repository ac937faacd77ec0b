package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
// Four families: validation (fix your input), authorization (you may not),
// not-found (terminal), external (retryable, the dependency failed).
var (
	// Not found
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Validation and business rules
	ErrTournamentNameRequired   = errors.New("tournament name is required")
	ErrUnsupportedFormat        = errors.New("only round-robin tournaments are supported")
	ErrInvalidRoundCount        = errors.New("rounds must be between 1 and 4")
	ErrInvalidPlayerCount       = errors.New("between 2 and 20 players are required")
	ErrDuplicatePlayer          = errors.New("players must be distinct")
	ErrPlayerFieldsRequired     = errors.New("each player must have a name and a Lichess username")
	ErrInvalidChallengeSettings = errors.New("invalid challenge settings")
	ErrInvalidResult            = errors.New("result must be 1-0, 0-1 or 0.5-0.5")
	ErrInvalidGameLink          = errors.New("game link must be a lichess.org game URL")
	ErrNothingToUpdate          = errors.New("at least one of result and game link must be provided")
	ErrTermTooShort             = errors.New("autocomplete term must be at least 3 characters")

	// Authentication and authorization
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrTokenInvalid           = errors.New("invalid or expired token")
	ErrNotTournamentPlayer    = errors.New("only registered tournament players can update matches")
	ErrNotMatchParticipant    = errors.New("only a player of this match can issue its challenge")
	ErrCreatorOnly            = errors.New("only the tournament creator can delete it")

	// External collaborators (persistence, Lichess)
	ErrExternalDependency = errors.New("external dependency failed")
)

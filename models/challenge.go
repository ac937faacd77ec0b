package models

import (
	"errors"
	"fmt"
)

// Time control kinds accepted by the Lichess challenge API.
const (
	TimeControlClock          = "clock"
	TimeControlCorrespondence = "correspondence"
	TimeControlUnlimited      = "unlimited"
)

// TimeControl describes how a challenged game is timed. Limit and Increment
// apply to clock games, Days to correspondence games; unlimited games carry
// no time parameters at all.
type TimeControl struct {
	Type      string `json:"type"`
	Limit     int    `json:"limit,omitempty"`     // initial clock, seconds
	Increment int    `json:"increment,omitempty"` // per-move increment, seconds
	Days      int    `json:"days,omitempty"`      // days per move
}

// ChallengeSettings is the configuration handed verbatim to Lichess when a
// challenge is issued for a match. It is fixed when the tournament is created
// and never changes afterwards.
type ChallengeSettings struct {
	TimeControl TimeControl `json:"timeControl"`
	Rated       bool        `json:"rated"`
	Variant     string      `json:"variant,omitempty"`
	Rules       []string    `json:"rules,omitempty"`
}

var (
	errTimeControlType = errors.New("time control type must be clock, correspondence or unlimited")
	errClockLimit      = errors.New("clock limit must be between 0 and 10800 seconds")
	errClockIncrement  = errors.New("clock increment must be between 0 and 60 seconds")
	errDays            = errors.New("correspondence days must be one of 1, 2, 3, 5, 7, 10, 14")
)

var challengeVariants = map[string]bool{
	"standard":      true,
	"chess960":      true,
	"crazyhouse":    true,
	"antichess":     true,
	"atomic":        true,
	"horde":         true,
	"kingOfTheHill": true,
	"racingKings":   true,
	"threeCheck":    true,
	"fromPosition":  true,
}

var challengeRules = map[string]bool{
	"noAbort":     true,
	"noRematch":   true,
	"noGiveTime":  true,
	"noClaimWin":  true,
	"noEarlyDraw": true,
}

var correspondenceDays = map[int]bool{1: true, 2: true, 3: true, 5: true, 7: true, 10: true, 14: true}

// Validate checks the settings against the ranges the Lichess challenge API
// accepts. Called once, at tournament creation.
func (s *ChallengeSettings) Validate() error {
	switch s.TimeControl.Type {
	case TimeControlClock:
		if s.TimeControl.Limit < 0 || s.TimeControl.Limit > 10800 {
			return errClockLimit
		}
		if s.TimeControl.Increment < 0 || s.TimeControl.Increment > 60 {
			return errClockIncrement
		}
	case TimeControlCorrespondence:
		if !correspondenceDays[s.TimeControl.Days] {
			return errDays
		}
	case TimeControlUnlimited:
	default:
		return errTimeControlType
	}

	if s.Variant != "" && !challengeVariants[s.Variant] {
		return fmt.Errorf("unknown chess variant %q", s.Variant)
	}
	for _, rule := range s.Rules {
		if !challengeRules[rule] {
			return fmt.Errorf("unknown challenge rule %q", rule)
		}
	}
	return nil
}

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChallengeSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings ChallengeSettings
		wantErr  bool
	}{
		{
			name: "blitz clock",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlClock, Limit: 300, Increment: 3},
				Rated:       true,
			},
		},
		{
			name: "correspondence three days",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlCorrespondence, Days: 3},
			},
		},
		{
			name: "unlimited with variant and rules",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlUnlimited},
				Variant:     "chess960",
				Rules:       []string{"noAbort", "noEarlyDraw"},
			},
		},
		{
			name: "unknown time control type",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: "hourglass"},
			},
			wantErr: true,
		},
		{
			name: "clock limit too long",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlClock, Limit: 10801},
			},
			wantErr: true,
		},
		{
			name: "negative increment",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlClock, Limit: 300, Increment: -1},
			},
			wantErr: true,
		},
		{
			name: "unsupported correspondence days",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlCorrespondence, Days: 4},
			},
			wantErr: true,
		},
		{
			name: "unknown variant",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlUnlimited},
				Variant:     "losers",
			},
			wantErr: true,
		},
		{
			name: "unknown rule",
			settings: ChallengeSettings{
				TimeControl: TimeControl{Type: TimeControlUnlimited},
				Rules:       []string{"noResign"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

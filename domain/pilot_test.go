package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPilot(t *testing.T) {
	const strong = "correct-horse-battery-staple-42"

	t.Run("valid pilot verifies its password", func(t *testing.T) {
		p, err := NewPilot(PilotConfig{ID: uuid.New(), Callsign: "maverick_7", PlainPassword: strong})
		require.NoError(t, err)
		assert.NotEqual(t, strong, p.PasswordHash)
		assert.True(t, p.VerifyPassword(strong))
		assert.False(t, p.VerifyPassword("wrong"))
	})

	t.Run("callsign rules", func(t *testing.T) {
		cases := map[string]error{
			"ab":                    ErrCallsignTooShort,
			strings.Repeat("a", 21): ErrCallsignTooLong,
			"ice man":               ErrCallsignFormat,
		}
		for callsign, want := range cases {
			_, err := NewPilot(PilotConfig{ID: uuid.New(), Callsign: callsign, PlainPassword: strong})
			assert.ErrorIs(t, err, want, callsign)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := NewPilot(PilotConfig{ID: uuid.New(), Callsign: "goose", PlainPassword: "password"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestPilotRules(t *testing.T) {
	rules := PilotRules()
	assert.Equal(t, CallsignRules{MinLength: 3, MaxLength: 20, Pattern: `^[a-zA-Z0-9_]+$`, MinPasswordScore: 3}, rules)

	_, err := NewPilot(PilotConfig{ID: uuid.New(), Callsign: strings.Repeat("a", rules.MaxLength+1), PlainPassword: "correct-horse-battery-staple-42"})
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrCallsignTaken))
	assert.False(t, IsValidationError(nil))
}

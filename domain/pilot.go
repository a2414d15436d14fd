package domain

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
	"github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordStrengthScore = 3

	callsignPattern   = `^[a-zA-Z0-9_]+$` // Alphanumeric with underscores
	minCallsignLength = 3
	maxCallsignLength = 20

	bcryptCost = 12
)

var (
	callsignRegex = regexp.MustCompile(callsignPattern)

	ErrCallsignTooShort = errors.New("callsign too short")
	ErrCallsignTooLong  = errors.New("callsign too long")
	ErrCallsignFormat   = errors.New("invalid callsign format")
	ErrWeakPassword     = errors.New("weak password")
	ErrCallsignTaken    = errors.New("callsign already taken")
)

// CallsignRules describes what NewPilot accepts, for clients that validate before submitting.
type CallsignRules struct {
	MinLength        int    `json:"min_length"`
	MaxLength        int    `json:"max_length"`
	Pattern          string `json:"pattern"`
	MinPasswordScore int    `json:"min_password_score"` // zxcvbn score, 0-4
}

// PilotRules returns the registration rules NewPilot enforces.
func PilotRules() CallsignRules {
	return CallsignRules{
		MinLength:        minCallsignLength,
		MaxLength:        maxCallsignLength,
		Pattern:          callsignPattern,
		MinPasswordScore: minPasswordStrengthScore,
	}
}

// IsValidationError reports whether err comes from rejecting a callsign or password.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrCallsignTooShort) || errors.Is(err, ErrCallsignTooLong) ||
		errors.Is(err, ErrCallsignFormat) || errors.Is(err, ErrWeakPassword)
}

// Pilot is a registered player who can post flight times.
type Pilot struct {
	ID           uuid.UUID `bson:"_id"`
	Callsign     string    `bson:"callsign"`
	PasswordHash string    `bson:"passwordHash"`
}

// PilotConfig holds parameters for creating a Pilot from a plain password.
type PilotConfig struct {
	ID            uuid.UUID
	Callsign      string
	PlainPassword string
}

// NewPilot validates the config and hashes the password.
func NewPilot(config PilotConfig) (*Pilot, error) {
	if err := validateCallsign(config.Callsign); err != nil {
		return nil, err
	}

	if err := validatePassword(config.PlainPassword); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(config.PlainPassword)
	if err != nil {
		return nil, err
	}

	return &Pilot{
		ID:           config.ID,
		Callsign:     config.Callsign,
		PasswordHash: passwordHash,
	}, nil
}

// VerifyPassword verifies if the given password matches the stored hash.
func (p *Pilot) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password))
	return err == nil
}

func validateCallsign(callsign string) error {
	if len(callsign) < minCallsignLength {
		return ErrCallsignTooShort
	}
	if len(callsign) > maxCallsignLength {
		return ErrCallsignTooLong
	}
	if !callsignRegex.MatchString(callsign) {
		return ErrCallsignFormat
	}
	return nil
}

// validatePassword checks the strength of the password.
func validatePassword(password string) error {
	result := zxcvbn.PasswordStrength(password, nil)
	if result.Score < minPasswordStrengthScore {
		return ErrWeakPassword
	}
	return nil
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

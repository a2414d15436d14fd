package service

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/beka-birhanu/drone-maze/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid callsign or password")

var _ i.Authenticator = &Auth{}

// Auth registers pilots and issues their bearer tokens.
type Auth struct {
	pilotRepo i.PilotRepo
	tokenizer i.Tokenizer
}

// NewAuthService creates an Auth backed by the given repository and tokenizer.
func NewAuthService(pilotRepo i.PilotRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if pilotRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service needs a pilot repo and a tokenizer")
	}
	return &Auth{
		pilotRepo: pilotRepo,
		tokenizer: tokenizer,
	}, nil
}

// Register creates a pilot with a fresh ID. A callsign already in use fails with
// dmn.ErrCallsignTaken before the password is hashed.
func (a *Auth) Register(callsign, password string) error {
	if _, err := a.pilotRepo.ByCallsign(callsign); err == nil {
		return dmn.ErrCallsignTaken
	} else if !errors.Is(err, dmn.ErrPilotNotFound) {
		return err
	}

	pilotConfig := dmn.PilotConfig{
		ID:            uuid.New(),
		Callsign:      callsign,
		PlainPassword: password,
	}

	pilot, err := dmn.NewPilot(pilotConfig)
	if err != nil {
		return err
	}

	return a.pilotRepo.Save(pilot)
}

// SignIn checks the credentials and returns the pilot with a signed token.
func (a *Auth) SignIn(callsign, password string) (*dmn.Pilot, string, error) {
	pilot, err := a.pilotRepo.ByCallsign(callsign)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !pilot.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		ClaimPilotID:  pilot.ID.String(),
		ClaimCallsign: pilot.Callsign,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return pilot, token, nil
}

// Pilot returns the registered pilot with the given ID.
func (a *Auth) Pilot(id uuid.UUID) (*dmn.Pilot, error) {
	return a.pilotRepo.ByID(id)
}

// Claim names carried by pilot tokens.
const (
	ClaimPilotID  = "pilotID"
	ClaimCallsign = "callsign"
)

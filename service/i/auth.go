package i

import (
	dmn "github.com/beka-birhanu/drone-maze/domain"
	"github.com/google/uuid"
)

// Authenticator registers pilots and signs them in.
type Authenticator interface {
	Register(callsign, password string) error
	SignIn(callsign, password string) (*dmn.Pilot, string, error)
	Pilot(id uuid.UUID) (*dmn.Pilot, error)
}

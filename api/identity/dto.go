package identity

import dmn "github.com/beka-birhanu/drone-maze/domain"

// AuthRequest carries pilot credentials.
type AuthRequest struct {
	Callsign string `json:"callsign" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	ID       string `json:"id"`
	Callsign string `json:"callsign"`
	Token    string `json:"token"`
}

// PilotResponse is a pilot's public profile.
type PilotResponse struct {
	ID       string `json:"id"`
	Callsign string `json:"callsign"`
}

// ErrorResponse reports a failed request. Rules is set when registration input was rejected.
type ErrorResponse struct {
	Error string             `json:"error"`
	Rules *dmn.CallsignRules `json:"rules,omitempty"`
}

// Package flightapi records flight times and serves level leaderboards.
package flightapi

// FlightRequest reports a completed run through a level.
type FlightRequest struct {
	DurationMS int64 `json:"duration_ms" binding:"required"`
}

// StandingResponse is one leaderboard row.
type StandingResponse struct {
	Rank       int    `json:"rank"`
	PilotID    string `json:"pilot_id"`
	Callsign   string `json:"callsign"`
	DurationMS int64  `json:"duration_ms"`
}

// LeaderboardResponse lists the fastest pilots of a level.
type LeaderboardResponse struct {
	LevelID   string             `json:"level_id"`
	Entries   int64              `json:"entries"`
	Standings []StandingResponse `json:"standings"`
}

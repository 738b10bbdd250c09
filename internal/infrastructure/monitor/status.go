package monitor

import "time"

type Status struct {
	Backend   string    `json:"backend"`
	Online    bool      `json:"online"`
	Keys      int       `json:"keys"`
	LastError string    `json:"last_error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}

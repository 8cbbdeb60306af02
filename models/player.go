package models

import "time"

// Player is a registered participant. Players exist independently of
// tournaments and are attached to one through its roster.
type Player struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

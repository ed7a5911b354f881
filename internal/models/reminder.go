package models

import "github.com/google/uuid"

// Reminder is a task bound to a resolved geographic coordinate.
// A reminder only exists fully resolved: it is constructed after its
// address has been geocoded successfully, never in a pending state.
type Reminder struct {
	ID        uuid.UUID `json:"id"`        // ID is the unique identifier, assigned at creation.
	Task      string    `json:"task"`      // Task is the free-text label shown in the notification.
	Address   string    `json:"address"`   // Address is the user-entered street address.
	Latitude  float64   `json:"latitude"`  // Latitude resolved from the address.
	Longitude float64   `json:"longitude"` // Longitude resolved from the address.
}

// Coordinates returns the reminder's resolved location.
func (r Reminder) Coordinates() Coordinates {
	return Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}

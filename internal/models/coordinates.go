package models

import "time"

// Coordinates represents a geographical point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// Position is a single fix delivered by the position feed.
type Position struct {
	Coordinates

	Timestamp time.Time `json:"timestamp"` // Timestamp is when the fix was taken.
}

package geocoding

import (
	"context"

	"github.com/nearby-labs/waypost/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the corresponding coordinates and an error if any occurs.
// Only the first candidate returned by the underlying service is used.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

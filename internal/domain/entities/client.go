package entities

import (
	"strings"
	"time"
)

// Client is a customer of a business.
//
// Storage model (DynamoDB):
//   - PK: client_key = "<business_id>#<lowercase name>"
//   - GSI: business_id-index (PK business_id, SK name) for listing
//
// Using the lookup key as PK enforces one client per name within a business,
// while the same name can exist under different businesses.
type Client struct {
	ID         string    `json:"id"`
	BusinessID string    `json:"business_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ClientNameKey normalizes a client name for case-insensitive lookup.
func ClientNameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

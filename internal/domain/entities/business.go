package entities

import "time"

// Business is the tenant: the tradesperson account that owns clients,
// conversations and documents.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (phone_number-index): phone_number
//
// PhoneNumber is the sender identity; inbound texts are attributed to the
// business whose PhoneNumber matches the From number.
type Business struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	PaymentInfo string    `json:"payment_info,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayName prefers the company name on documents.
func (b Business) DisplayName() string {
	if b.CompanyName != "" {
		return b.CompanyName
	}
	return b.Name
}

package response

import (
	"time"

	"sms_invoicer/internal/domain/entities"
)

type BusinessResponse struct {
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

func FromBusiness(b entities.Business) BusinessResponse {
	return BusinessResponse{
		ID:          b.ID,
		Name:        b.Name,
		CompanyName: b.CompanyName,
		PhoneNumber: b.PhoneNumber,
		Email:       b.Email,
		Address:     b.Address,
		PaymentInfo: b.PaymentInfo,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

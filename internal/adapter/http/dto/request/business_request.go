package request

import (
	"strings"

	"sms_invoicer/internal/usecase"
)

// RegisterBusinessRequest is the onboarding payload of a tradesperson.
type RegisterBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PaymentInfo string `json:"payment_info"`
}

func (r RegisterBusinessRequest) ToInput() usecase.RegisterBusinessInput {
	return usecase.RegisterBusinessInput{
		Name:        strings.TrimSpace(r.Name),
		CompanyName: strings.TrimSpace(r.CompanyName),
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
		Email:       strings.TrimSpace(r.Email),
		Address:     strings.TrimSpace(r.Address),
		PaymentInfo: strings.TrimSpace(r.PaymentInfo),
	}
}

// UpdateBusinessRequest is a partial profile edit; omitted fields are kept.
type UpdateBusinessRequest struct {
	Name        *string `json:"name"`
	CompanyName *string `json:"company_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Address     *string `json:"address"`
	PaymentInfo *string `json:"payment_info"`
}

func (r UpdateBusinessRequest) ToInput() usecase.UpdateBusinessInput {
	return usecase.UpdateBusinessInput{
		Name:        r.Name,
		CompanyName: r.CompanyName,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Address:     r.Address,
		PaymentInfo: r.PaymentInfo,
	}
}

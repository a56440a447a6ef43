package request

import (
	"strings"

	"sms_invoicer/internal/usecase"
)

type CreateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (r CreateClientRequest) ToInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Email:   strings.TrimSpace(r.Email),
		Address: strings.TrimSpace(r.Address),
		Notes:   strings.TrimSpace(r.Notes),
	}
}

// UpdateClientRequest is a partial edit; omitted fields are kept.
type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (r UpdateClientRequest) ToInput() usecase.UpdateClientInput {
	return usecase.UpdateClientInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

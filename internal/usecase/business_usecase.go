package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrBusinessNotFound     = errors.New("business not found")
	ErrBusinessPhoneTaken   = errors.New("business phone number already registered")
	ErrInvalidBusinessID    = errors.New("invalid business id")
	ErrInvalidBusinessInput = errors.New("invalid business input")
)

// RegisterBusinessInput is the onboarding form of a tradesperson.
type RegisterBusinessInput struct {
	Name        string
	CompanyName string
	PhoneNumber string
	Email       string
	Address     string
	PaymentInfo string
}

// UpdateBusinessInput carries a partial profile update; nil fields are kept.
type UpdateBusinessInput struct {
	Name        *string
	CompanyName *string
	PhoneNumber *string
	Email       *string
	Address     *string
	PaymentInfo *string
}

type IBusinessUseCase interface {
	Register(ctx context.Context, in RegisterBusinessInput) (entities.Business, error)
	GetByID(ctx context.Context, id string) (entities.Business, error)
	Update(ctx context.Context, id string, in UpdateBusinessInput) (entities.Business, error)
}

type BusinessUseCase struct {
	repo interfaces.IBusinessRepository
}

var _ IBusinessUseCase = (*BusinessUseCase)(nil)

func NewBusinessUseCase(repo interfaces.IBusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

func (u *BusinessUseCase) Register(ctx context.Context, in RegisterBusinessInput) (entities.Business, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.PhoneNumber)
	if name == "" || phone == "" {
		return entities.Business{}, ErrInvalidBusinessInput
	}

	// Enforce: 1 business per sender phone.
	if existing, err := u.repo.GetByPhone(ctx, phone); err != nil {
		return entities.Business{}, err
	} else if existing.ID != "" {
		return entities.Business{}, ErrBusinessPhoneTaken
	}

	now := time.Now().UTC()
	b := entities.Business{
		ID:          uuid.NewString(),
		Name:        name,
		CompanyName: strings.TrimSpace(in.CompanyName),
		PhoneNumber: phone,
		Email:       strings.TrimSpace(in.Email),
		Address:     strings.TrimSpace(in.Address),
		PaymentInfo: strings.TrimSpace(in.PaymentInfo),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return u.repo.Create(ctx, b)
}

func (u *BusinessUseCase) GetByID(ctx context.Context, id string) (entities.Business, error) {
	return loadBusiness(ctx, u.repo, id)
}

// Update applies a partial profile edit. The sender phone stays unique across
// businesses since inbound texts are routed by it.
func (u *BusinessUseCase) Update(ctx context.Context, id string, in UpdateBusinessInput) (entities.Business, error) {
	b, err := loadBusiness(ctx, u.repo, id)
	if err != nil {
		return entities.Business{}, err
	}

	if in.Name != nil {
		if b.Name = strings.TrimSpace(*in.Name); b.Name == "" {
			return entities.Business{}, ErrInvalidBusinessInput
		}
	}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		if phone == "" {
			return entities.Business{}, ErrInvalidBusinessInput
		}
		if phone != b.PhoneNumber {
			existing, err := u.repo.GetByPhone(ctx, phone)
			if err != nil {
				return entities.Business{}, err
			}
			if existing.ID != "" && existing.ID != b.ID {
				return entities.Business{}, ErrBusinessPhoneTaken
			}
		}
		b.PhoneNumber = phone
	}
	setTrimmed(&b.CompanyName, in.CompanyName)
	setTrimmed(&b.Email, in.Email)
	setTrimmed(&b.Address, in.Address)
	setTrimmed(&b.PaymentInfo, in.PaymentInfo)
	b.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, b)
	if err != nil {
		return entities.Business{}, err
	}
	if updated.ID == "" {
		return entities.Business{}, ErrBusinessNotFound
	}
	return updated, nil
}

func loadBusiness(ctx context.Context, repo interfaces.IBusinessRepository, id string) (entities.Business, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Business{}, ErrInvalidBusinessID
	}

	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return entities.Business{}, err
	}
	if b.ID == "" {
		return entities.Business{}, ErrBusinessNotFound
	}
	return b, nil
}

func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

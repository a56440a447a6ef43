package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound     = errors.New("client not found")
	ErrClientNameTaken    = errors.New("client name already registered")
	ErrInvalidClientID    = errors.New("invalid client id")
	ErrInvalidClientInput = errors.New("invalid client input")
)

type CreateClientInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// UpdateClientInput carries a partial edit; nil fields are kept.
type UpdateClientInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

type IClientUseCase interface {
	List(ctx context.Context, businessID string) ([]entities.Client, error)
	Create(ctx context.Context, businessID string, in CreateClientInput) (entities.Client, error)
	Update(ctx context.Context, businessID, clientID string, in UpdateClientInput) (entities.Client, error)
}

// ClientUseCase manages the client book of a business from the web side.
// Clients created here are found by name by the SMS flow.
type ClientUseCase struct {
	businesses interfaces.IBusinessRepository
	clients    interfaces.IClientRepository
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(businesses interfaces.IBusinessRepository, clients interfaces.IClientRepository) *ClientUseCase {
	return &ClientUseCase{businesses: businesses, clients: clients}
}

func (u *ClientUseCase) List(ctx context.Context, businessID string) ([]entities.Client, error) {
	b, err := loadBusiness(ctx, u.businesses, businessID)
	if err != nil {
		return nil, err
	}

	clients, err := u.clients.ListByBusiness(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(clients, func(i, j int) bool {
		return entities.ClientNameKey(clients[i].Name) < entities.ClientNameKey(clients[j].Name)
	})
	return clients, nil
}

func (u *ClientUseCase) Create(ctx context.Context, businessID string, in CreateClientInput) (entities.Client, error) {
	name := strings.Join(strings.Fields(in.Name), " ")
	if name == "" {
		return entities.Client{}, ErrInvalidClientInput
	}
	b, err := loadBusiness(ctx, u.businesses, businessID)
	if err != nil {
		return entities.Client{}, err
	}

	now := time.Now().UTC()
	created, err := u.clients.Create(ctx, entities.Client{
		ID:         uuid.NewString(),
		BusinessID: b.ID,
		Name:       name,
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Address:    strings.TrimSpace(in.Address),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return entities.Client{}, err
	}
	if created.ID == "" {
		return entities.Client{}, ErrClientNameTaken
	}
	return created, nil
}

func (u *ClientUseCase) Update(ctx context.Context, businessID, clientID string, in UpdateClientInput) (entities.Client, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	clients, err := u.List(ctx, businessID)
	if err != nil {
		return entities.Client{}, err
	}

	var current entities.Client
	for _, c := range clients {
		if c.ID == clientID {
			current = c
			break
		}
	}
	if current.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}

	next := current
	if in.Name != nil {
		if next.Name = strings.Join(strings.Fields(*in.Name), " "); next.Name == "" {
			return entities.Client{}, ErrInvalidClientInput
		}
	}
	setTrimmed(&next.Phone, in.Phone)
	setTrimmed(&next.Email, in.Email)
	setTrimmed(&next.Address, in.Address)
	setTrimmed(&next.Notes, in.Notes)
	next.UpdatedAt = time.Now().UTC()

	updated, err := u.clients.Update(ctx, current, next)
	if err != nil {
		return entities.Client{}, err
	}
	if updated.ID == "" {
		if entities.ClientNameKey(current.Name) != entities.ClientNameKey(next.Name) {
			return entities.Client{}, ErrClientNameTaken
		}
		return entities.Client{}, ErrClientNotFound
	}
	return updated, nil
}

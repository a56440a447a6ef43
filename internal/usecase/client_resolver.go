package usecase

import (
	"context"
	"errors"
	"strings"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase/interfaces"
)

var ErrMissingClientName = errors.New("missing client name")

type ResolutionKind string

const (
	ResolutionExistingClient ResolutionKind = "existing_client"
	ResolutionNeedsPhone     ResolutionKind = "needs_phone"
)

// Resolution is the outcome of matching a parsed request to a stored client.
//
// For ResolutionExistingClient, Client carries the stored record with empty
// fields filled from the message. For ResolutionNeedsPhone only ClientName is set.
type Resolution struct {
	Kind       ResolutionKind
	Client     entities.Client
	ClientName string
}

type IClientResolver interface {
	Resolve(ctx context.Context, businessID string, req entities.ParsedDocumentRequest) (Resolution, error)
}

type ClientResolver struct {
	clients interfaces.IClientRepository
}

var _ IClientResolver = (*ClientResolver)(nil)

func NewClientResolver(clients interfaces.IClientRepository) *ClientResolver {
	return &ClientResolver{clients: clients}
}

func (r *ClientResolver) Resolve(ctx context.Context, businessID string, req entities.ParsedDocumentRequest) (Resolution, error) {
	name := ""
	if req.ClientName != nil {
		name = strings.Join(strings.Fields(*req.ClientName), " ")
	}
	if name == "" {
		return Resolution{}, ErrMissingClientName
	}

	existing, err := r.clients.FindByName(ctx, businessID, name)
	if err != nil {
		return Resolution{}, err
	}
	if existing.ID == "" {
		return Resolution{Kind: ResolutionNeedsPhone, ClientName: name}, nil
	}

	// Stored details win; the message only fills gaps.
	existing.Phone = firstNonEmpty(existing.Phone, deref(req.ClientPhone))
	existing.Email = firstNonEmpty(existing.Email, deref(req.ClientEmail))
	existing.Address = firstNonEmpty(existing.Address, deref(req.ClientAddress))

	return Resolution{Kind: ResolutionExistingClient, Client: existing, ClientName: existing.Name}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"sms_invoicer/internal/domain/entities"
	mock_interfaces "sms_invoicer/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestClientResolver_Resolve(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		r := NewClientResolver(nil)
		req := janeRequest()
		req.ClientName = nil
		_, err := r.Resolve(context.Background(), "biz-1", req)
		if !errors.Is(err, ErrMissingClientName) {
			t.Fatalf("expected ErrMissingClientName, got %v", err)
		}

		req.ClientName = strPtr("   ")
		_, err = r.Resolve(context.Background(), "biz-1", req)
		if !errors.Is(err, ErrMissingClientName) {
			t.Fatalf("expected ErrMissingClientName for blank name, got %v", err)
		}
	})

	t.Run("unknown client needs phone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		r := NewClientResolver(repo)
		repo.EXPECT().FindByName(gomock.Any(), "biz-1", "Jane Doe").Return(entities.Client{}, nil)

		res, err := r.Resolve(context.Background(), "biz-1", janeRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Kind != ResolutionNeedsPhone || res.ClientName != "Jane Doe" {
			t.Fatalf("unexpected resolution: %+v", res)
		}
	})

	t.Run("stored fields win and gaps are filled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		r := NewClientResolver(repo)
		repo.EXPECT().FindByName(gomock.Any(), "biz-1", "Jane Doe").Return(entities.Client{
			ID: "cli-1", Name: "Jane Doe", Phone: "555-111-2222",
		}, nil)

		req := janeRequest()
		req.ClientPhone = strPtr("555-999-8888")
		req.ClientEmail = strPtr("jane@doe.com")

		res, err := r.Resolve(context.Background(), "biz-1", req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Kind != ResolutionExistingClient || res.Client.ID != "cli-1" {
			t.Fatalf("unexpected resolution: %+v", res)
		}
		if res.Client.Phone != "555-111-2222" || res.Client.Email != "jane@doe.com" || res.Client.Address != "" {
			t.Fatalf("unexpected merge: %+v", res.Client)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIClientRepository(ctrl)
		r := NewClientResolver(repo)
		repo.EXPECT().FindByName(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.Client{}, errors.New("db"))

		_, err := r.Resolve(context.Background(), "biz-1", janeRequest())
		if err == nil || err.Error() != "db" {
			t.Fatalf("expected db error, got %v", err)
		}
	})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sms_invoicer/internal/adapter/http/handlers/mocks"
	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestBusinessHandler_RegisterBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.POST("/v1/businesses", h.RegisterBusiness)

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses", bytes.NewBufferString(`{"name":"Joe"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("phone taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.POST("/v1/businesses", h.RegisterBusiness)

		uc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(entities.Business{}, usecase.ErrBusinessPhoneTaken)

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses", bytes.NewBufferString(`{"name":"Joe","phone_number":"+15550001111"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.POST("/v1/businesses", h.RegisterBusiness)

		uc.EXPECT().Register(gomock.Any(), usecase.RegisterBusinessInput{Name: "Joe", PhoneNumber: "+15550001111", CompanyName: "Joe's Plumbing"}).
			Return(entities.Business{ID: "biz-1", Name: "Joe", CompanyName: "Joe's Plumbing", PhoneNumber: "+15550001111"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses", bytes.NewBufferString(`{"name":"Joe","company_name":"Joe's Plumbing","phone_number":" +15550001111 "}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "biz-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestBusinessHandler_GetBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", usecase.ErrBusinessNotFound, http.StatusNotFound},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
		{"ok", nil, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIBusinessUseCase(ctrl)
			h := NewBusinessHandler(uc)

			r := gin.New()
			r.GET("/v1/businesses/:id", h.GetBusiness)

			b := entities.Business{}
			if tc.err == nil {
				b = entities.Business{ID: "biz-1", Name: "Joe"}
			}
			uc.EXPECT().GetByID(gomock.Any(), "biz-1").Return(b, tc.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/businesses/biz-1", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestBusinessHandler_UpdateBusiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("bad email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.PATCH("/v1/businesses/:id", h.UpdateBusiness)

		req := httptest.NewRequest(http.MethodPatch, "/v1/businesses/biz-1", bytes.NewBufferString(`{"email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("only sent fields are passed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.PATCH("/v1/businesses/:id", h.UpdateBusiness)

		uc.EXPECT().Update(gomock.Any(), "biz-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, in usecase.UpdateBusinessInput) (entities.Business, error) {
				if in.Name != nil || in.PhoneNumber != nil {
					t.Fatalf("unexpected fields in input: %+v", in)
				}
				if in.PaymentInfo == nil || *in.PaymentInfo != "Venmo @joe" {
					t.Fatalf("expected payment info, got %+v", in.PaymentInfo)
				}
				return entities.Business{ID: "biz-1", Name: "Joe", PaymentInfo: *in.PaymentInfo}, nil
			})

		req := httptest.NewRequest(http.MethodPatch, "/v1/businesses/biz-1", bytes.NewBufferString(`{"payment_info":"Venmo @joe"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_info"] != "Venmo @joe" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("phone taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBusinessUseCase(ctrl)
		h := NewBusinessHandler(uc)

		r := gin.New()
		r.PATCH("/v1/businesses/:id", h.UpdateBusiness)

		uc.EXPECT().Update(gomock.Any(), "biz-1", gomock.Any()).Return(entities.Business{}, usecase.ErrBusinessPhoneTaken)

		req := httptest.NewRequest(http.MethodPatch, "/v1/businesses/biz-1", bytes.NewBufferString(`{"phone_number":"+15552220000"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

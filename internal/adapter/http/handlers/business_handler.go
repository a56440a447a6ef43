package handlers

import (
	"errors"
	"net/http"

	request "sms_invoicer/internal/adapter/http/dto/request"
	response "sms_invoicer/internal/adapter/http/dto/response"
	"sms_invoicer/internal/usecase"
	"sms_invoicer/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidBusinessPayload = pkg.NewDomainErrorSimple("INVALID_BUSINESS_INPUT", "Invalid business payload", http.StatusBadRequest)
)

// BusinessHandler handles the business profile endpoints (web onboarding).
type BusinessHandler struct {
	usecase usecase.IBusinessUseCase
}

func NewBusinessHandler(uc usecase.IBusinessUseCase) *BusinessHandler {
	return &BusinessHandler{usecase: uc}
}

// RegisterBusiness godoc
// @Summary      Register a business
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Param        business  body      request.RegisterBusinessRequest  true  "Business profile"
// @Success      201       {object}  response.BusinessResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /businesses [post]
func (h *BusinessHandler) RegisterBusiness(c *gin.Context) {
	var payload request.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBusinessPayload.HTTPStatus, errInvalidBusinessPayload.ToHTTPError())
		return
	}

	business, err := h.usecase.Register(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapBusinessError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromBusiness(business))
}

// GetBusiness godoc
// @Summary      Get a business
// @Tags         businesses
// @Produce      json
// @Param        id   path      string  true  "Business id"
// @Success      200  {object}  response.BusinessResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /businesses/{id} [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapBusinessError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBusiness(business))
}

// UpdateBusiness godoc
// @Summary      Update a business profile
// @Tags         businesses
// @Accept       json
// @Produce      json
// @Param        id        path      string                           true  "Business id"
// @Param        business  body      request.UpdateBusinessRequest    true  "Fields to change"
// @Success      200       {object}  response.BusinessResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /businesses/{id} [patch]
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	var payload request.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidBusinessPayload.HTTPStatus, errInvalidBusinessPayload.ToHTTPError())
		return
	}

	business, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapBusinessError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromBusiness(business))
}

func mapBusinessError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidBusinessID), errors.Is(err, usecase.ErrInvalidBusinessInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBusinessPhoneTaken):
		return pkg.NewDomainErrorSimple("BUSINESS_PHONE_TAKEN", "Phone number already registered", http.StatusConflict)
	case errors.Is(err, usecase.ErrBusinessNotFound):
		return pkg.NewDomainErrorSimple("BUSINESS_NOT_FOUND", "Business not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

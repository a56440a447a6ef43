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
	errInvalidClientPayload = pkg.NewDomainErrorSimple("INVALID_CLIENT_INPUT", "Invalid client payload", http.StatusBadRequest)
)

// ClientHandler serves the client book of a business.
type ClientHandler struct {
	usecase usecase.IClientUseCase
}

func NewClientHandler(uc usecase.IClientUseCase) *ClientHandler {
	return &ClientHandler{usecase: uc}
}

// ListClients godoc
// @Summary      List clients of a business
// @Tags         clients
// @Produce      json
// @Param        id   path      string  true  "Business id"
// @Success      200  {array}   response.ClientResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /businesses/{id}/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.usecase.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClients(clients))
}

// CreateClient godoc
// @Summary      Add a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path      string                       true  "Business id"
// @Param        client  body      request.CreateClientRequest  true  "Client"
// @Success      201     {object}  response.ClientResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      404     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /businesses/{id}/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var payload request.CreateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClientPayload.HTTPStatus, errInvalidClientPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Create(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromClient(client))
}

// UpdateClient godoc
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id        path      string                       true  "Business id"
// @Param        clientId  path      string                       true  "Client id"
// @Param        client    body      request.UpdateClientRequest  true  "Fields to change"
// @Success      200       {object}  response.ClientResponse
// @Failure      400       {object}  pkg.HTTPError
// @Failure      404       {object}  pkg.HTTPError
// @Failure      409       {object}  pkg.HTTPError
// @Router       /businesses/{id}/clients/{clientId} [patch]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	var payload request.UpdateClientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidClientPayload.HTTPStatus, errInvalidClientPayload.ToHTTPError())
		return
	}

	client, err := h.usecase.Update(c.Request.Context(), c.Param("id"), c.Param("clientId"), payload.ToInput())
	if err != nil {
		appErr := mapClientError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromClient(client))
}

func mapClientError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidClientInput), errors.Is(err, usecase.ErrInvalidClientID), errors.Is(err, usecase.ErrInvalidBusinessID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrClientNameTaken):
		return pkg.NewDomainErrorSimple("CLIENT_NAME_TAKEN", "A client with this name already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrBusinessNotFound):
		return pkg.NewDomainErrorSimple("BUSINESS_NOT_FOUND", "Business not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"sms_invoicer/internal/domain/entities"
	"sms_invoicer/internal/usecase"
	"sms_invoicer/pkg"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves QuickBooks CSV downloads.
type ExportHandler struct {
	usecase usecase.IExportUseCase
}

func NewExportHandler(uc usecase.IExportUseCase) *ExportHandler {
	return &ExportHandler{usecase: uc}
}

var exportTypes = map[string]entities.DocumentType{
	"invoices": entities.DocumentTypeInvoice,
	"quotes":   entities.DocumentTypeQuote,
}

// ExportDocuments godoc
// @Summary      Export invoices or quotes as QuickBooks CSV
// @Tags         exports
// @Produce      text/csv
// @Param        id    path      string  true  "Business id"
// @Param        type  path      string  true  "invoices or quotes"
// @Success      200   {file}    file
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Router       /businesses/{id}/exports/{type} [get]
func (h *ExportHandler) ExportDocuments(c *gin.Context) {
	docType, ok := exportTypes[c.Param("type")]
	if !ok {
		appErr := mapExportError(usecase.ErrInvalidExportType)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	export, err := h.usecase.ExportCSV(c.Request.Context(), c.Param("id"), docType)
	if err != nil {
		appErr := mapExportError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.Content)
}

func mapExportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidExportType), errors.Is(err, usecase.ErrInvalidBusinessID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrBusinessNotFound):
		return pkg.NewDomainErrorSimple("BUSINESS_NOT_FOUND", "Business not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handlers

import (
	"errors"
	"net/http"

	response "sms_invoicer/internal/adapter/http/dto/response"
	"sms_invoicer/internal/usecase"
	"sms_invoicer/pkg"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves the "View" link sent with every created document.
type DocumentHandler struct {
	usecase usecase.IDocumentUseCase
}

func NewDocumentHandler(uc usecase.IDocumentUseCase) *DocumentHandler {
	return &DocumentHandler{usecase: uc}
}

// GetDocument godoc
// @Summary      Get an invoice or quote
// @Tags         documents
// @Produce      json
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  response.DocumentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	doc, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromDocument(doc, h.usecase.ViewURL(doc)))
}

// DownloadPDF godoc
// @Summary      Redirect to the document PDF
// @Tags         documents
// @Param        id   path  string  true  "Document id"
// @Success      302
// @Failure      404  {object}  pkg.HTTPError
// @Router       /documents/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *gin.Context) {
	doc, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapDocumentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if doc.PDFURL == "" {
		appErr := pkg.NewDomainErrorSimple("PDF_NOT_AVAILABLE", "PDF not available", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Redirect(http.StatusFound, doc.PDFURL)
}

func mapDocumentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidDocumentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrDocumentNotFound):
		return pkg.NewDomainErrorSimple("DOCUMENT_NOT_FOUND", "Document not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

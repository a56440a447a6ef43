package routes

import (
	"net/http"

	"sms_invoicer/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathTwilio     = "/twilio"
	PathBusinesses = "/businesses"
	PathDocuments  = "/documents"
	PathPing       = "/ping"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addTwilioRoutes(rg *gin.RouterGroup, h *handlers.TwilioHandler) {
	twilio := rg.Group(PathTwilio)
	{
		// Configured as the "A message comes in" webhook of the Twilio number.
		twilio.POST("/sms", h.InboundSMS)
		twilio.POST("/sms-status", h.StatusCallback)
	}
}

func addBusinessRoutes(rg *gin.RouterGroup, h *handlers.BusinessHandler) {
	businesses := rg.Group(PathBusinesses)
	{
		businesses.POST("", h.RegisterBusiness)
		businesses.GET("/:id", h.GetBusiness)
		businesses.PATCH("/:id", h.UpdateBusiness)
	}
}

func addClientRoutes(rg *gin.RouterGroup, h *handlers.ClientHandler) {
	clients := rg.Group(PathBusinesses + "/:id/clients")
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.PATCH("/:clientId", h.UpdateClient)
	}
}

func addExportRoutes(rg *gin.RouterGroup, h *handlers.ExportHandler) {
	// /businesses/:id/exports/invoices, /businesses/:id/exports/quotes
	rg.GET(PathBusinesses+"/:id/exports/:type", h.ExportDocuments)
}

func addDocumentRoutes(rg *gin.RouterGroup, h *handlers.DocumentHandler) {
	documents := rg.Group(PathDocuments)
	{
		documents.GET("/:id", h.GetDocument)
		documents.GET("/:id/pdf", h.DownloadPDF)
	}
}

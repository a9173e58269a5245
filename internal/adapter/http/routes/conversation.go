package routes

import (
	"manifiesto_bot/internal/adapter/http/handlers"
	"manifiesto_bot/internal/app"

	"github.com/gin-gonic/gin"
)

func addConversationRoutes(rg *gin.RouterGroup, c *app.Container) {
	conversation := handlers.NewConversationHandler(c.Lifecycle)
	payments := handlers.NewBillingPaymentHandler(c.Payments)

	sessions := rg.Group("/sessions/:session_id")
	sessions.GET("", conversation.GetSession)
	sessions.POST("/turns", conversation.PostTurn)
	sessions.POST("/reset", conversation.ResetSession)
	sessions.POST("/payments/confirm", conversation.ConfirmPayment)
	sessions.GET("/payments", payments.ListPaymentsBySessionID)

	rg.GET("/payments/:payment_id", payments.GetPaymentByID)
}

func addDocumentRoutes(rg *gin.RouterGroup, c *app.Container) {
	documents := handlers.NewDocumentHandler(c.Documents)

	rg.GET("/sessions/:session_id/documents", documents.ListDocumentsBySessionID)
	rg.GET("/documents/:document_id", documents.GetDocument)
}

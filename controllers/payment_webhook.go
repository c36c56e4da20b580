package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/payment"
)

type PaymentWebhookController struct {
	Provider *payment.StripeProvider
	Logger   *zap.Logger
}

func NewPaymentWebhookController(provider *payment.StripeProvider, logger *zap.Logger) *PaymentWebhookController {
	return &PaymentWebhookController{Provider: provider, Logger: logger}
}

// Handle verifies and dispatches provider events onto the callbacks of the
// checkout session that opened the payment.
func (pc *PaymentWebhookController) Handle(c *gin.Context) {
	event, err := pc.Provider.ParseWebhook(c.Request)
	if err != nil {
		pc.Logger.Warn("Invalid webhook", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid webhook"})
		return
	}

	pc.Provider.HandleEvent(event)
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

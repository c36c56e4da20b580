package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/middleware"
	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/services"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
	Logger   *zap.Logger
}

func NewCheckoutController(checkout *services.CheckoutService, logger *zap.Logger) *CheckoutController {
	return &CheckoutController{Checkout: checkout, Logger: logger}
}

// Start opens a checkout session for the user's cart.
func (cc *CheckoutController) Start(c *gin.Context) {
	userID := middleware.GetUserID(c)

	view, err := cc.Checkout.Start(c.Request.Context(), userID)
	if errors.Is(err, services.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}
	if err != nil {
		cc.Logger.Error("Failed to start checkout", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start checkout"})
		return
	}
	c.JSON(http.StatusCreated, view)
}

// SubmitDetails collects name and shipping address.
func (cc *CheckoutController) SubmitDetails(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := cc.Checkout.SubmitDetails(c.Param("id"), req.Name, req.Address)
	cc.respond(c, view, err)
}

// SelectPayment records the payment method.
func (cc *CheckoutController) SelectPayment(c *gin.Context) {
	var req struct {
		Mode models.PaymentMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	view, err := cc.Checkout.SelectPayment(c.Param("id"), req.Mode)
	cc.respond(c, view, err)
}

// Pay runs the selected settle path.
func (cc *CheckoutController) Pay(c *gin.Context) {
	view, err := cc.Checkout.Pay(c.Request.Context(), c.Param("id"))
	cc.respond(c, view, err)
}

// Dismiss reports that the customer closed the payment dialog.
func (cc *CheckoutController) Dismiss(c *gin.Context) {
	view, err := cc.Checkout.Dismiss(c.Param("id"))
	cc.respond(c, view, err)
}

// Close abandons the checkout.
func (cc *CheckoutController) Close(c *gin.Context) {
	err := cc.Checkout.Close(c.Param("id"))
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
	case errors.Is(err, services.ErrNotClosable):
		c.JSON(http.StatusConflict, gin.H{"error": "checkout cannot be closed right now"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to close checkout"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "checkout closed"})
	}
}

// Finish acknowledges a completed checkout.
func (cc *CheckoutController) Finish(c *gin.Context) {
	err := cc.Checkout.Finish(c.Param("id"))
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "checkout is not completed"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finish checkout"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "checkout finished"})
	}
}

// Get returns the session state.
func (cc *CheckoutController) Get(c *gin.Context) {
	view, err := cc.Checkout.View(c.Param("id"))
	cc.respond(c, view, err)
}

func (cc *CheckoutController) respond(c *gin.Context, view *models.CheckoutView, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "checkout not found"})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "operation not allowed in current state"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vErr.Message, "checkout": view})
	case err != nil:
		cc.Logger.Error("Checkout operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout operation failed"})
	default:
		c.JSON(http.StatusOK, view)
	}
}

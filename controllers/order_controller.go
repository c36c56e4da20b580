package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/middleware"
	"github.com/incognitoworld123-dev/RationalART/repository"
	"github.com/incognitoworld123-dev/RationalART/services"
)

type OrderController struct {
	Orders *services.OrderService
	Logger *zap.Logger
}

func NewOrderController(orders *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{Orders: orders, Logger: logger}
}

// List returns the caller's order history.
func (oc *OrderController) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	orders, err := oc.Orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		oc.Logger.Error("Failed to list orders", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListAll returns every order (admin).
func (oc *OrderController) ListAll(c *gin.Context) {
	orders, err := oc.Orders.ListAll(c.Request.Context())
	if err != nil {
		oc.Logger.Error("Failed to list all orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Complete marks a pending order delivered (admin).
func (oc *OrderController) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	err = oc.Orders.Complete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no pending order with that id"})
		return
	}
	if err != nil {
		oc.Logger.Error("Failed to complete order", zap.String("order_id", id.String()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id.String(), "status": "COMPLETED"})
}

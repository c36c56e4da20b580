package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/middleware"
	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/repository"
)

type CartController struct {
	Carts    repository.CartRepository
	Products repository.ProductRepository
	Logger   *zap.Logger
}

func NewCartController(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) *CartController {
	return &CartController{Carts: carts, Products: products, Logger: logger}
}

// Get returns the current cart for the user.
func (cc *CartController) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	cart, err := cc.Carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		cc.Logger.Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cart"})
		return
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem adds or bumps a line. Quantity is validated against current stock;
// title and price come from the catalog, never the client.
func (cc *CartController) AddItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	product, err := cc.Products.FindByID(ctx, req.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		cc.Logger.Error("Failed to load product", zap.String("product_id", req.ProductID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}

	cart, _ := cc.Carts.GetCart(ctx, userID)
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	found := false
	for i, existing := range cart.Items {
		if existing.ProductID == req.ProductID {
			cart.Items[i].Quantity += req.Quantity
			if cart.Items[i].Quantity > product.Stock {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cannot exceed available stock"})
				return
			}
			found = true
			break
		}
	}
	if !found {
		if req.Quantity > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot exceed available stock"})
			return
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  req.Quantity,
		})
	}

	if err := cc.Carts.SaveCart(ctx, cart); err != nil {
		cc.Logger.Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// RemoveItem drops a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")
	ctx := c.Request.Context()

	cart, _ := cc.Carts.GetCart(ctx, userID)
	if cart == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not found"})
		return
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := cc.Carts.SaveCart(ctx, cart); err != nil {
		cc.Logger.Error("Failed to update cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// Clear removes all items from the cart.
func (cc *CartController) Clear(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := cc.Carts.DeleteCart(c.Request.Context(), userID); err != nil {
		cc.Logger.Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}

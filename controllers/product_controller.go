package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/repository"
)

type ProductController struct {
	Repo   repository.ProductRepository
	Logger *zap.Logger
}

func NewProductController(repo repository.ProductRepository, logger *zap.Logger) *ProductController {
	return &ProductController{Repo: repo, Logger: logger}
}

// List returns the catalog, seeding the defaults on first read.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.Repo.List(c.Request.Context())
	if err != nil {
		pc.Logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load catalog"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create adds a product to the catalog (admin).
func (pc *ProductController) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Quote       string `json:"quote" binding:"required"`
		Description string `json:"description"`
		Price       int    `json:"price" binding:"required,min=1"`
		Stock       int    `json:"stock" binding:"min=0"`
		ImageURL    string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Quote:       req.Quote,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}

	if err := pc.Repo.Save(c.Request.Context(), product); err != nil {
		pc.Logger.Error("Failed to save product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateStock sets the stock level for a product (admin).
func (pc *ProductController) UpdateStock(c *gin.Context) {
	var req struct {
		Stock int `json:"stock" binding:"min=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	err := pc.Repo.UpdateStock(c.Request.Context(), id, req.Stock)
	if errors.Is(err, repository.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		pc.Logger.Error("Failed to update stock", zap.String("product_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stock"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "stock": req.Stock})
}

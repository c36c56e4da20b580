package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/middleware"
	"github.com/incognitoworld123-dev/RationalART/models"
	"github.com/incognitoworld123-dev/RationalART/repository"
	"github.com/incognitoworld123-dev/RationalART/services"
)

type ConceptController struct {
	Concepts *services.ConceptService
	Tracker  *services.PreviewTracker
	Requests repository.DesignRequestRepository
	Logger   *zap.Logger
}

func NewConceptController(
	concepts *services.ConceptService,
	tracker *services.PreviewTracker,
	requests repository.DesignRequestRepository,
	logger *zap.Logger,
) *ConceptController {
	return &ConceptController{
		Concepts: concepts,
		Tracker:  tracker,
		Requests: requests,
		Logger:   logger,
	}
}

// AutoGenerate produces a complete AI product draft (admin). A failure of
// the structured concept call is a blocking error; the admin retries the
// whole operation.
func (cn *ConceptController) AutoGenerate(c *gin.Context) {
	draft, err := cn.Concepts.AutoGenerateProduct(c.Request.Context())
	if err != nil {
		cn.Logger.Error("Concept generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI generation failed, please try again"})
		return
	}
	c.JSON(http.StatusOK, draft)
}

type requestPayload struct {
	Quote           string `json:"quote" binding:"required"`
	StylePreference string `json:"style_preference"`
	ShirtColor      string `json:"shirt_color"`
	FontStyle       string `json:"font_style"`
	// PreviewID attaches an earlier visualization to the submission.
	PreviewID string `json:"preview_id"`
}

// SubmitRequest records a commission in the request log.
func (cn *ConceptController) SubmitRequest(c *gin.Context) {
	var req requestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := &models.DesignRequest{
		ID:              uuid.New().String(),
		CustomerName:    middleware.GetUserName(c),
		Quote:           req.Quote,
		StylePreference: req.StylePreference,
		ShirtColor:      req.ShirtColor,
		FontStyle:       req.FontStyle,
		CreatedAt:       time.Now().UTC(),
	}

	if req.PreviewID != "" {
		if preview, err := cn.Tracker.Get(req.PreviewID); err == nil && preview.Status == services.PreviewReady {
			record.GeneratedImageURL = preview.Generation.ImageURL
			record.Fallback = preview.Generation.Fallback
		}
	}

	if err := cn.Requests.Append(c.Request.Context(), record); err != nil {
		cn.Logger.Error("Failed to store design request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store request"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

// ListRequests returns the commission log (admin).
func (cn *ConceptController) ListRequests(c *gin.Context) {
	requests, err := cn.Requests.List(c.Request.Context())
	if err != nil {
		cn.Logger.Error("Failed to list design requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// StartPreview kicks off an asynchronous visualization and returns its id.
// Starting a new preview supersedes the user's previous one; a superseded
// generation finishing late is dropped, not applied.
func (cn *ConceptController) StartPreview(c *gin.Context) {
	var req requestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.GetUserID(c)
	preview := cn.Tracker.Begin(userID)

	go func() {
		// Detached from the request context: in-flight generation has no
		// cancellation; a stale result is discarded by the tracker.
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		result, err := cn.Concepts.Visualize(ctx, req.Quote, req.StylePreference, req.ShirtColor, req.FontStyle)
		if err != nil {
			cn.Logger.Error("Visualization failed",
				zap.String("preview_id", preview.ID),
				zap.Error(err),
			)
			cn.Tracker.Fail(preview.ID, "visualization failed, please try again later")
			return
		}
		if !cn.Tracker.Complete(preview.ID, result) {
			cn.Logger.Info("Dropped superseded preview result", zap.String("preview_id", preview.ID))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"preview_id": preview.ID, "status": services.PreviewPending})
}

// GetPreview polls a visualization.
func (cn *ConceptController) GetPreview(c *gin.Context) {
	preview, err := cn.Tracker.Get(c.Param("id"))
	if errors.Is(err, services.ErrPreviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "preview not found"})
		return
	}
	c.JSON(http.StatusOK, preview)
}

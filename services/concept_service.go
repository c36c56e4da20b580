package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/gemini"
	"github.com/incognitoworld123-dev/RationalART/models"
)

// StructuredGenerator is the schema-constrained remote call used for
// auto-generated product concepts.
type StructuredGenerator interface {
	GenerateJSON(ctx context.Context, model, prompt string, schema *gemini.Schema, out any) error
}

// Refiner and Generator let tests swap the pipeline stages.
type Refiner interface {
	Refine(ctx context.Context, concept, style string) string
}

type Generator interface {
	Generate(ctx context.Context, prompt, literalText, fontStyle string) (*models.GenerationResult, error)
}

const conceptPrompt = `Generate a creative, intellectual t-shirt concept based on the philosophy of Ayn Rand (Objectivism).
Focus on themes of individualism, reason, capitalism, and the human will.
Provide a powerful quote, a catchy title for the product, a visual description for the shirt design, and a suggested price in INR (between 800 and 2000).`

const (
	autoConceptStyle = "Bold, Objectivist, Art Deco, High Contrast, Black Background"
	autoConceptFont  = "Art Deco"
	commissionStyle  = "Objectivist Aesthetic"
	defaultStock     = 50
)

var conceptSchema = &gemini.Schema{
	Type: "OBJECT",
	Properties: map[string]*gemini.Schema{
		"title":       {Type: "STRING"},
		"quote":       {Type: "STRING"},
		"description": {Type: "STRING"},
		"price":       {Type: "NUMBER"},
	},
	Required: []string{"title", "quote", "description", "price"},
}

// ConceptService composes refinement and image generation for the two
// pipeline entry points: the admin "AI concept" product draft and the
// customer "visualize a commission" preview.
type ConceptService struct {
	ai        StructuredGenerator
	refiner   Refiner
	generator Generator
	logger    *zap.Logger
}

func NewConceptService(ai StructuredGenerator, refiner Refiner, generator Generator, logger *zap.Logger) *ConceptService {
	return &ConceptService{
		ai:        ai,
		refiner:   refiner,
		generator: generator,
		logger:    logger,
	}
}

type conceptData struct {
	Title       string  `json:"title"`
	Quote       string  `json:"quote"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// AutoGenerateProduct builds a complete product draft: structured concept,
// refined visual prompt, generated artwork carrying the quote as literal
// text. Any failure of the structured call is fatal, never a partial draft.
func (s *ConceptService) AutoGenerateProduct(ctx context.Context) (*models.ProductDraft, error) {
	var data conceptData
	if err := s.ai.GenerateJSON(ctx, gemini.ModelText, conceptPrompt, conceptSchema, &data); err != nil {
		return nil, fmt.Errorf("concept generation failed: %w", err)
	}
	if data.Title == "" || data.Quote == "" || data.Description == "" || data.Price <= 0 {
		return nil, fmt.Errorf("concept generation failed: incomplete concept data")
	}

	rawConcept := fmt.Sprintf("T-shirt design. Title: %s. Description: %s. Text on shirt: %q.",
		data.Title, data.Description, data.Quote)

	refined := s.refiner.Refine(ctx, rawConcept, autoConceptStyle)

	result, err := s.generator.Generate(ctx, refined, data.Quote, autoConceptFont)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Auto-generated product concept",
		zap.String("title", data.Title),
		zap.String("tier", string(result.Tier)),
	)

	return &models.ProductDraft{
		Title:       data.Title,
		Quote:       data.Quote,
		Description: data.Description,
		Price:       int(data.Price),
		Stock:       defaultStock,
		ImageURL:    result.ImageURL,
		Generation:  result,
	}, nil
}

// VisualizeResult carries the refined prompt back so the customer sees what
// was actually sent downstream.
type VisualizeResult struct {
	RefinedPrompt string                   `json:"refined_prompt"`
	Generation    *models.GenerationResult `json:"generation"`
}

// Visualize previews a commission. Refinement may paraphrase the concept,
// but the rendered text is constrained to the original, pre-refinement
// quote: what the customer typed is what the shirt must say.
func (s *ConceptService) Visualize(ctx context.Context, quote, stylePreference, shirtColor, fontStyle string) (*VisualizeResult, error) {
	concept := buildCommissionConcept(quote, shirtColor, fontStyle)

	style := strings.TrimSpace(stylePreference)
	if style == "" {
		style = commissionStyle
	}

	refined := s.refiner.Refine(ctx, concept, style)

	result, err := s.generator.Generate(ctx, refined, quote, fontStyle)
	if err != nil {
		return nil, err
	}

	return &VisualizeResult{
		RefinedPrompt: refined,
		Generation:    result,
	}, nil
}

func buildCommissionConcept(quote, shirtColor, fontStyle string) string {
	var details []string
	if shirtColor != "" {
		details = append(details, fmt.Sprintf("T-Shirt Color: %s.", shirtColor))
	}
	if fontStyle != "" {
		details = append(details, fmt.Sprintf("Font Style: %s.", fontStyle))
	}
	if len(details) == 0 {
		return quote
	}
	return fmt.Sprintf("%s. %s", quote, strings.Join(details, " "))
}

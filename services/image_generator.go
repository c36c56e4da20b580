package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/gemini"
	"github.com/incognitoworld123-dev/RationalART/models"
)

// ImageModel is the remote image-generation call, one tier at a time.
type ImageModel interface {
	GenerateImage(ctx context.Context, model, prompt string) (string, error)
}

// ImageGenerator runs the tiered generation chain: primary remote model,
// secondary remote model, then a deterministic local placeholder. Tiers are
// strictly sequential so a billable call is never duplicated.
type ImageGenerator struct {
	ai             ImageModel
	primaryModel   string
	secondaryModel string
	logger         *zap.Logger
}

func NewImageGenerator(ai ImageModel, logger *zap.Logger) *ImageGenerator {
	return &ImageGenerator{
		ai:             ai,
		primaryModel:   gemini.ModelImagePrimary,
		secondaryModel: gemini.ModelImageSecondary,
		logger:         logger,
	}
}

// Generate produces an image for the prompt. Only quota-exceeded and
// authorization-denied failures of the primary tier trigger the fallback
// chain; any other primary-tier error is fatal and propagates. Once the
// fallback chain is entered the caller always receives a result.
func (g *ImageGenerator) Generate(ctx context.Context, prompt, literalText, fontStyle string) (*models.GenerationResult, error) {
	finalPrompt := AugmentPrompt(prompt, literalText, fontStyle)

	img, err := g.ai.GenerateImage(ctx, g.primaryModel, finalPrompt)
	if err == nil {
		return &models.GenerationResult{ImageURL: img, Tier: models.TierPrimary}, nil
	}

	if !gemini.IsQuotaOrAuth(err) {
		return nil, err
	}

	g.logger.Warn("Primary image tier failed, falling back",
		zap.String("model", g.primaryModel),
		zap.Error(err),
	)

	img, err = g.ai.GenerateImage(ctx, g.secondaryModel, finalPrompt)
	if err == nil {
		return &models.GenerationResult{ImageURL: img, Tier: models.TierSecondary}, nil
	}

	g.logger.Warn("Secondary image tier failed, returning placeholder",
		zap.String("model", g.secondaryModel),
		zap.Error(err),
	)

	return &models.GenerationResult{
		ImageURL: PlaceholderURL(finalPrompt),
		Tier:     models.TierPlaceholder,
		Fallback: true,
		Reason:   models.ReasonQuotaOrAuth,
	}, nil
}

// AugmentPrompt appends the literal-text directive: the artwork must
// prominently display the exact text, in the requested typography, spelled
// correctly and legibly. Embedded double-quotes are normalized to single
// quotes so the directive's own quoting stays unambiguous.
func AugmentPrompt(prompt, literalText, fontStyle string) string {
	if strings.TrimSpace(literalText) == "" {
		return prompt
	}

	clean := strings.ReplaceAll(strings.TrimSpace(literalText), `"`, "'")

	var b strings.Builder
	b.WriteString(prompt)
	fmt.Fprintf(&b, "\n\nIMPORTANT: The t-shirt design MUST prominently feature the text \"%s\".", clean)
	if fontStyle != "" {
		fmt.Fprintf(&b, " The text must be rendered in a %s typography style.", fontStyle)
	}
	b.WriteString(" Ensure the text is spelled correctly and legible.")
	return b.String()
}

// PlaceholderURL is the deterministic local fallback: the seed derives from
// the augmented prompt's length, so the same prompt always yields the same
// placeholder.
func PlaceholderURL(finalPrompt string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%d/400/500?grayscale&blur=2", len(finalPrompt))
}

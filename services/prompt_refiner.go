package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/gemini"
)

// TextGenerator is the remote text-generation call the refiner depends on.
type TextGenerator interface {
	GenerateText(ctx context.Context, model, systemInstruction, prompt string) (string, error)
}

const refinerInstruction = `You are an expert fashion designer and art director helping design a t-shirt.
Rewrite the user's concept into a single-paragraph, highly detailed image generation prompt.
Include specific details about:
1. The t-shirt color (default to black unless specified).
2. The exact typography/font style for any text.
3. The visual graphic elements, patterns, and composition.
4. The art style (e.g., Art Deco, Bauhaus, Industrial, Minimalist).
5. Lighting and presentation (e.g., studio lighting, flat lay, or model).
Output ONLY the prompt text to be fed into an image generator. Do not add conversational filler.`

// PromptRefiner turns a raw concept plus a style hint into a structured
// visual prompt with a single remote call. Refinement failure is non-fatal:
// the caller's raw concept is returned unchanged.
type PromptRefiner struct {
	ai     TextGenerator
	logger *zap.Logger
}

func NewPromptRefiner(ai TextGenerator, logger *zap.Logger) *PromptRefiner {
	return &PromptRefiner{ai: ai, logger: logger}
}

func (r *PromptRefiner) Refine(ctx context.Context, concept, style string) string {
	prompt := fmt.Sprintf("User Concept: %q\nUser Style Preference: %q", concept, style)

	refined, err := r.ai.GenerateText(ctx, gemini.ModelText, refinerInstruction, prompt)
	if err != nil {
		r.logger.Warn("Prompt refinement failed, using raw concept", zap.Error(err))
		return concept
	}
	refined = strings.TrimSpace(refined)
	if refined == "" {
		return concept
	}
	return refined
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/gemini"
	"github.com/incognitoworld123-dev/RationalART/models"
)

// --- Mock Image Model ---
type MockImageModel struct {
	mock.Mock
}

func (m *MockImageModel) GenerateImage(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

func quotaErr() error {
	return &gemini.APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded", Kind: gemini.KindQuota}
}

func authErr() error {
	return &gemini.APIError{StatusCode: 403, Status: "PERMISSION_DENIED", Message: "permission denied", Kind: gemini.KindAuth}
}

func TestImageGeneratorTiers(t *testing.T) {
	ctx := context.Background()

	t.Run("Primary tier success", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("data:image/png;base64,abc", nil).Once()

		result, err := gen.Generate(ctx, "a shirt", "Who is John Galt?", "Art Deco")

		assert.NoError(t, err)
		assert.Equal(t, models.TierPrimary, result.Tier)
		assert.False(t, result.Fallback)
		assert.Equal(t, "data:image/png;base64,abc", result.ImageURL)
		mockAI.AssertExpectations(t)
	})

	t.Run("Quota failure falls back to secondary", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", quotaErr()).Once()
		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImageSecondary, mock.Anything).
			Return("data:image/png;base64,def", nil).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "")

		assert.NoError(t, err)
		assert.Equal(t, models.TierSecondary, result.Tier)
		assert.False(t, result.Fallback)
		mockAI.AssertExpectations(t)
	})

	t.Run("Auth failure falls back to secondary", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", authErr()).Once()
		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImageSecondary, mock.Anything).
			Return("data:image/png;base64,def", nil).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "")

		assert.NoError(t, err)
		assert.Equal(t, models.TierSecondary, result.Tier)
		mockAI.AssertExpectations(t)
	})

	t.Run("Non-quota primary failure is fatal, secondary never called", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		boom := &gemini.APIError{StatusCode: 500, Status: "INTERNAL", Message: "server error", Kind: gemini.KindOther}
		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", boom).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, boom)
		mockAI.AssertNumberOfCalls(t, "GenerateImage", 1)
	})

	t.Run("Missing image payload on primary is fatal", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", gemini.ErrNoImageData).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, gemini.ErrNoImageData)
		mockAI.AssertNumberOfCalls(t, "GenerateImage", 1)
	})

	t.Run("Both tiers exhausted yields deterministic placeholder", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", quotaErr()).Once()
		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImageSecondary, mock.Anything).
			Return("", errors.New("secondary down")).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "Art Deco")

		assert.NoError(t, err)
		assert.Equal(t, models.TierPlaceholder, result.Tier)
		assert.True(t, result.Fallback)
		assert.Equal(t, models.ReasonQuotaOrAuth, result.Reason)

		finalPrompt := AugmentPrompt("a shirt", "A is A", "Art Deco")
		assert.Equal(t, PlaceholderURL(finalPrompt), result.ImageURL)
		mockAI.AssertExpectations(t)
	})

	t.Run("Secondary missing image payload yields placeholder", func(t *testing.T) {
		mockAI := new(MockImageModel)
		gen := NewImageGenerator(mockAI, zap.NewNop())

		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImagePrimary, mock.Anything).
			Return("", quotaErr()).Once()
		mockAI.On("GenerateImage", mock.Anything, gemini.ModelImageSecondary, mock.Anything).
			Return("", gemini.ErrNoImageData).Once()

		result, err := gen.Generate(ctx, "a shirt", "A is A", "")

		assert.NoError(t, err)
		assert.Equal(t, models.TierPlaceholder, result.Tier)
		mockAI.AssertExpectations(t)
	})
}

func TestAugmentPrompt(t *testing.T) {
	t.Run("Appends literal text directive", func(t *testing.T) {
		got := AugmentPrompt("base prompt", "A is A", "Art Deco")

		assert.Contains(t, got, "base prompt")
		assert.Contains(t, got, `MUST prominently feature the text "A is A"`)
		assert.Contains(t, got, "Art Deco typography style")
		assert.Contains(t, got, "spelled correctly and legible")
	})

	t.Run("Normalizes embedded double quotes", func(t *testing.T) {
		got := AugmentPrompt("base", `He said "never"`, "")

		assert.Contains(t, got, `"He said 'never'"`)
	})

	t.Run("Blank literal text leaves prompt untouched", func(t *testing.T) {
		assert.Equal(t, "base", AugmentPrompt("base", "   ", "Art Deco"))
	})

	t.Run("No font clause without a font style", func(t *testing.T) {
		got := AugmentPrompt("base", "A is A", "")

		assert.NotContains(t, got, "typography style")
	})
}

func TestPlaceholderURL(t *testing.T) {
	prompt := "some final prompt"
	expected := fmt.Sprintf("https://picsum.photos/seed/%d/400/500?grayscale&blur=2", len(prompt))
	assert.Equal(t, expected, PlaceholderURL(prompt))
	// Same prompt, same URL.
	assert.Equal(t, PlaceholderURL(prompt), PlaceholderURL(prompt))
}

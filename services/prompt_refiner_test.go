package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/incognitoworld123-dev/RationalART/gemini"
)

// --- Mock Text Generator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, model, systemInstruction, prompt string) (string, error) {
	args := m.Called(ctx, model, systemInstruction, prompt)
	return args.String(0), args.Error(1)
}

func TestPromptRefiner(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns refined prompt on success", func(t *testing.T) {
		mockAI := new(MockTextGenerator)
		refiner := NewPromptRefiner(mockAI, zap.NewNop())

		mockAI.On("GenerateText", mock.Anything, gemini.ModelText, mock.Anything, mock.Anything).
			Return("  A detailed studio flat lay of a black t-shirt.  ", nil).Once()

		got := refiner.Refine(ctx, "a shirt about reason", "Minimalist")

		assert.Equal(t, "A detailed studio flat lay of a black t-shirt.", got)
		mockAI.AssertExpectations(t)
	})

	t.Run("Falls back to raw concept on error", func(t *testing.T) {
		mockAI := new(MockTextGenerator)
		refiner := NewPromptRefiner(mockAI, zap.NewNop())

		mockAI.On("GenerateText", mock.Anything, gemini.ModelText, mock.Anything, mock.Anything).
			Return("", errors.New("model overloaded")).Once()

		got := refiner.Refine(ctx, "a shirt about reason", "Minimalist")

		assert.Equal(t, "a shirt about reason", got)
	})

	t.Run("Falls back to raw concept on empty response", func(t *testing.T) {
		mockAI := new(MockTextGenerator)
		refiner := NewPromptRefiner(mockAI, zap.NewNop())

		mockAI.On("GenerateText", mock.Anything, gemini.ModelText, mock.Anything, mock.Anything).
			Return("   ", nil).Once()

		got := refiner.Refine(ctx, "a shirt about reason", "Minimalist")

		assert.Equal(t, "a shirt about reason", got)
	})

	t.Run("Sends concept and style in the user prompt", func(t *testing.T) {
		mockAI := new(MockTextGenerator)
		refiner := NewPromptRefiner(mockAI, zap.NewNop())

		var sent string
		mockAI.On("GenerateText", mock.Anything, gemini.ModelText, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.String(3) }).
			Return("refined", nil).Once()

		refiner.Refine(ctx, "the concept", "the style")

		assert.Contains(t, sent, "the concept")
		assert.Contains(t, sent, "the style")
	})
}

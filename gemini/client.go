package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// ModelText drives prompt refinement and structured concept generation.
	ModelText = "gemini-2.5-flash"
	// ModelImagePrimary is the high-quality image tier.
	ModelImagePrimary = "gemini-3-pro-image-preview"
	// ModelImageSecondary is the standard-quality image tier.
	ModelImageSecondary = "gemini-2.5-flash-image"
)

// ErrNoImageData is returned when a generateContent call succeeds but the
// response carries no inline image payload.
var ErrNoImageData = errors.New("no image data in response")

// ErrEmptyText is returned when a text call succeeds but yields no text.
var ErrEmptyText = errors.New("empty text in response")

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	apiVersion := strings.TrimSpace(opts.APIVersion)
	if apiVersion == "" {
		apiVersion = "v1beta"
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:     opts.APIKey,
		baseURL:    baseURL,
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GenerateText runs a single text generation call and returns the
// concatenated text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, model, systemInstruction, prompt string) (string, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}
	if systemInstruction != "" {
		req.SystemInstruction = &content{Role: "user", Parts: []part{{Text: systemInstruction}}}
	}

	resp, err := c.generateContent(ctx, model, req)
	if err != nil {
		return "", err
	}

	text, _ := extractParts(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

// GenerateJSON runs a schema-constrained text call and decodes the JSON
// response into out. A response that does not satisfy the schema is an error.
func (c *Client) GenerateJSON(ctx context.Context, model, prompt string, schema *Schema, out any) error {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	resp, err := c.generateContent(ctx, model, req)
	if err != nil {
		return err
	}

	text, _ := extractParts(resp)
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode structured response: %w", err)
	}
	return nil
}

// GenerateImage runs a single image generation call against the given model
// tier and returns the first image as a data URL. A successful call without
// image data returns ErrNoImageData.
func (c *Client) GenerateImage(ctx context.Context, model, prompt string) (string, error) {
	req := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		},
	}

	resp, err := c.generateContent(ctx, model, req)
	if err != nil {
		return "", err
	}

	_, images := extractParts(resp)
	if len(images) == 0 {
		return "", ErrNoImageData
	}
	return images[0], nil
}

func (c *Client) generateContent(ctx context.Context, model string, payload generateContentRequest) (generateContentResponse, error) {
	var decoded generateContentResponse

	body, err := json.Marshal(payload)
	if err != nil {
		return decoded, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return decoded, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return decoded, fmt.Errorf("request: %w", err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return decoded, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		apiErr := newAPIError(httpResp.StatusCode, rawBody)
		c.logger.Warn("gemini API error",
			zap.String("model", model),
			zap.Int("status", httpResp.StatusCode),
			zap.String("kind", apiErr.Kind.String()),
		)
		return decoded, apiErr
	}

	if err := json.Unmarshal(rawBody, &decoded); err != nil {
		return decoded, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

func extractParts(resp generateContentResponse) (string, []string) {
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var textBuilder strings.Builder
	var images []string

	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			textBuilder.WriteString(p.Text)
		}
		if p.InlineData != nil && p.InlineData.Data != "" && p.InlineData.MimeType != "" {
			images = append(images, fmt.Sprintf("data:%s;base64,%s", p.InlineData.MimeType, p.InlineData.Data))
		}
	}

	return textBuilder.String(), images
}

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dilzzzz/bagdag/internal/config"
)

// ErrImageGeneration is the fixed user-facing error when the provider fails
// to produce a hole image.
var ErrImageGeneration = errors.New("Failed to generate the image. Please check the prompt and try again.")

// holePromptTemplate wraps the user's description the same way for every
// hole-designer request.
const holePromptTemplate = "A photorealistic image of a beautiful golf hole. %s. Professional golf course photography, golden hour lighting, vibrant colors."

// ImageClient generates hole images through the provider's OpenAI-compatible
// images endpoint. No eino component covers image generation, so it speaks
// HTTP directly.
type ImageClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewImageClient builds an image client from the AI configuration.
func NewImageClient(cfg config.AIConfig) *ImageClient {
	return &ImageClient{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.ImageModel,
	}
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
	Watermark      bool   `json:"watermark"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateHole renders the described golf hole and returns it as a
// data:image/jpeg;base64 URL, or "" when the model produced nothing.
func (c *ImageClient) GenerateHole(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(imageRequest{
		Model:          c.model,
		Prompt:         fmt.Sprintf(holePromptTemplate, prompt),
		Size:           "1792x1024",
		ResponseFormat: "b64_json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build image request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", ErrImageGeneration
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return "", ErrImageGeneration
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image generation returned status %d: %w", resp.StatusCode, ErrImageGeneration)
	}

	var decoded imageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode image response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("image generation failed: %s: %w", decoded.Error.Message, ErrImageGeneration)
	}

	if len(decoded.Data) == 0 || decoded.Data[0].B64JSON == "" {
		return "", nil
	}

	return "data:image/jpeg;base64," + decoded.Data[0].B64JSON, nil
}

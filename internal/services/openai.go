package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	DefaultImageModel = "dall-e-3"
	imageSize         = "1792x1024"

	imageStylePrefix = "Epic dark fantasy digital painting of: "
	imageStyleSuffix = ". Cinematic lighting, high detail, dramatic atmosphere."
)

// OpenAIImageService implements ImageGenerator using the OpenAI image API.
type OpenAIImageService struct {
	apiKey     string
	modelName  string
	baseURL    string
	httpClient *http.Client
}

var _ ImageGenerator = (*OpenAIImageService)(nil)

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenAIImageService creates a new OpenAI image service.
func NewOpenAIImageService(apiKey string, modelName string) *OpenAIImageService {
	if modelName == "" {
		modelName = DefaultImageModel
	}
	return &OpenAIImageService{
		apiKey:    apiKey,
		modelName: modelName,
		baseURL:   openAIBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// GenerateImage renders the visual prompt as PNG bytes. The style framing
// is applied here so story and lore prompts stay plain scene descriptions.
func (o *OpenAIImageService) GenerateImage(ctx context.Context, visualPrompt string) ([]byte, error) {
	imageReq := openAIImageRequest{
		Model:          o.modelName,
		Prompt:         imageStylePrefix + visualPrompt + imageStyleSuffix,
		N:              1,
		Size:           imageSize,
		ResponseFormat: "b64_json",
	}

	reqBody, err := json.Marshal(imageReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/images/generations", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var imageResp openAIImageResponse
	if err := json.Unmarshal(body, &imageResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if imageResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", imageResp.Error.Message)
	}

	if len(imageResp.Data) == 0 || imageResp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("no image returned")
	}

	img, err := base64.StdEncoding.DecodeString(imageResp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	return img, nil
}

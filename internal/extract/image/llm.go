package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"culturefeed-backend/internal/errors"
)

const llmTimeout = 60 * time.Second

// extractionPrompt requests the exact JSON shape spec.md §4.9 step 3
// names, reusing the teacher's "output ONLY valid JSON" instruction
// style from extractionSystemPrompt.
const extractionPrompt = `You are an event flyer information extractor. Given OCR text and an image of an event flyer, extract structured information.

Output ONLY valid JSON with no additional text or markdown formatting:
{
  "title": "Event Title",
  "description": "...",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "start_time": "HH:MM",
  "end_time": "HH:MM",
  "start_location": "...",
  "end_location": "...",
  "event_type": "...",
  "city": "...",
  "is_online": false,
  "is_registration_required": false,
  "registration_url": "...",
  "social_media_platform": "...",
  "social_media_handle": "...",
  "social_media_page_name": "...",
  "social_media_posted_by": "...",
  "social_media_url": "..."
}

Rules:
- Omit fields if not found (don't include null or empty values).
- Dates are YYYY-MM-DD; times are 24-hour HH:MM.
- event_type is one of: tour, exhibition, festival, photowalk, film, music, talk, workshop, event.
- Return ONLY the JSON object, no explanation or markdown code blocks.`

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content []any  `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// LLMClient calls the Anthropic Messages API with an OCR-text + image
// payload, grounded on the teacher's ExtractionService.callAnthropic.
type LLMClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	model      string
}

func NewLLMClient(apiKey string) *LLMClient {
	return &LLMClient{
		httpClient: &http.Client{Timeout: llmTimeout},
		apiKey:     apiKey,
		baseURL:    "https://api.anthropic.com",
		model:      "claude-haiku-4-5-20251001",
	}
}

func (c *LLMClient) SetBaseURL(url string) { c.baseURL = url }

// Extract sends ocrText plus the (already downscaled) image to the
// model and returns the parsed JSON fields as a generic map, falling
// back to a first-`{`-to-last-`}` substring parse when the response
// isn't pure JSON (spec.md §4.9 step 4).
func (c *LLMClient) Extract(ctx context.Context, ocrText string, imageBytes []byte, mediaType string) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, errors.NewValidationError("anthropic.api_key", "AI service not configured")
	}

	content := []any{
		map[string]any{
			"type": "image",
			"source": map[string]string{
				"type":       "base64",
				"media_type": mediaType,
				"data":       base64.StdEncoding.EncodeToString(imageBytes),
			},
		},
		map[string]string{
			"type": "text",
			"text": fmt.Sprintf("OCR text extracted from the flyer:\n%s", ocrText),
		},
	}

	reqBody := anthropicRequest{
		Model:     c.model,
		MaxTokens: 1024,
		System:    extractionPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: content}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.NewParseError("image.marshal_request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, errors.NewTransientIO("image.build_request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransientIO("image.call_anthropic", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransientIO("image.read_response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewTransientIO("image.call_anthropic", fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, errors.NewParseError("image.decode_response", err)
	}
	if apiResp.Error != nil {
		return nil, errors.NewTransientIO("image.call_anthropic", fmt.Errorf("%s", apiResp.Error.Message))
	}

	var text string
	for _, block := range apiResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	parsed := parseJSONResponse(text)
	if parsed == nil {
		return nil, errors.NewParseError("image.parse_llm_output", fmt.Errorf("response was not valid JSON"))
	}
	return parsed, nil
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func parseJSONResponse(text string) map[string]any {
	var result map[string]any
	if err := json.Unmarshal([]byte(text), &result); err == nil {
		return result
	}
	if match := jsonObjectPattern.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), &result); err == nil {
			return result
		}
	}
	return nil
}

package internal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	// DefaultModel is the image-capable Gemini model used for visual
	// prompting.
	DefaultModel = "gemini-2.5-flash-image-preview"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// GenerationClient submits a canvas capture plus structured instructions to
// the generation service and normalizes the response.
//
// The client is stateless apart from credentials and a single-slot in-flight
// guard: a second Generate call while one is outstanding fails with
// *BusyError instead of racing the first.
type GenerationClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	inFlight   atomic.Bool
}

// NewGenerationClient creates a client for the given API key. An empty model
// selects DefaultModel.
func NewGenerationClient(apiKey, model string) *GenerationClient {
	if model == "" {
		model = DefaultModel
	}
	return &GenerationClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// SetBaseURL overrides the service endpoint. Used by tests.
func (c *GenerationClient) SetBaseURL(url string) {
	c.baseURL = url
}

// generateContent request/response wire shapes. Parts are a variant: a part
// carries either text or inline binary data, and unknown levels may be
// absent entirely.
type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Candidates []struct {
		Content *struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the image and serialized instructions to the service and
// returns the normalized result. A response without candidates, content or
// parts yields an empty result, not an error. A canceled context returns
// *CanceledError; every other failure returns *GenerationError carrying the
// cause.
func (c *GenerationClient) Generate(ctx context.Context, imageBytes []byte, mimeType, instructions string) (*GenerationResult, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, &BusyError{}
	}
	defer c.inFlight.Store(false)

	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	promptText := fmt.Sprintf(
		"Process this visual prompt using the following structured instructions:\n\n%s\n\n"+
			"Execute these instructions precisely and return only the final enhanced image as specified above.",
		instructions,
	)

	reqBody := generateRequest{
		Contents: []requestContent{{
			Parts: []contentPart{
				{Text: promptText},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &CanceledError{Err: ctx.Err()}
		}
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &CanceledError{Err: ctx.Err()}
		}
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("read response: %w", err)}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("parse response (%d): %w", resp.StatusCode, err)}
	}
	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("api error (%d): %s", resp.StatusCode, parsed.Error.Message)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GenerationError{Model: c.model, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	return normalizeResponse(&parsed)
}

// normalizeResponse flattens candidates into a GenerationResult. When a
// response carries multiple text or image parts the last one wins; parts are
// not accumulated.
func normalizeResponse(resp *generateResponse) (*GenerationResult, error) {
	result := &GenerationResult{}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				result.Text = part.Text
			}
			if part.InlineData != nil && part.InlineData.Data != "" {
				raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, &GenerationError{Err: fmt.Errorf("decode image data: %w", err)}
				}
				result.Image = raw
			}
		}
	}
	return result, nil
}

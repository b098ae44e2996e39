package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ThisisBizness/Study-Buddy/pkg/domain"
	"github.com/ThisisBizness/Study-Buddy/pkg/solver"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int
	BaseURL         string // defaults to the public endpoint; tests override it
}

type client struct {
	cfg Config
	hc  *http.Client
}

func NewClient(cfg Config) (*client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is empty")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &client{cfg: cfg, hc: &http.Client{}}, nil
}

func (c *client) Solve(ctx context.Context, problem domain.Problem) (domain.Answer, error) {
	body, err := c.prepareRequest(problem)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("preparing request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	resp, err := c.sendRequest(ctx, url, body)
	if err != nil {
		return domain.Answer{}, err
	}
	defer resp.Body.Close()

	return c.processResponse(resp)
}

// Ping fetches the model metadata, a cheap way to verify the key and model
// are usable.
func (c *client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("reaching gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code %d for model %s", resp.StatusCode, c.cfg.Model)
	}
	return nil
}

func (c *client) prepareRequest(problem domain.Problem) ([]byte, error) {
	var parts []part

	if problem.ImageData != "" {
		mimeType := problem.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: mimeType,
			Data:     problem.ImageData,
		}})
	}
	if problem.Text != "" {
		parts = append(parts, part{Text: "Problem: " + problem.Text})
	}
	parts = append(parts, part{Text: solver.Instructions})

	request := generateContentRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			CandidateCount:  1,
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
		SafetySettings: defaultSafetySettings(),
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	return body, nil
}

func (c *client) sendRequest(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(resp.Body)

		var apiErr apiErrorResponse
		if err := json.Unmarshal(bodyBytes, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, domain.AppError{Message: "Google API error", Details: apiErr.Error.Message}
		}
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return resp, nil
}

func (c *client) processResponse(resp *http.Response) (domain.Answer, error) {
	var response generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return domain.Answer{}, fmt.Errorf("decoding response: %w", err)
	}

	// no candidates means the prompt was blocked by safety filters
	if len(response.Candidates) == 0 {
		details := "Content blocked by API safety filters."
		if reason := response.PromptFeedback.BlockReason; reason != "" {
			details += " Reason: " + reason
		}
		return domain.Answer{}, domain.AppError{Message: "Blocked Response", Details: details}
	}

	var texts []string
	for _, p := range response.Candidates[0].Content.Parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(texts, "\n"))
	if text == "" {
		return domain.Answer{}, domain.AppError{Message: "API Error", Details: "Failed to access valid response content."}
	}

	return solver.SplitSections(text), nil
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	CandidateCount  int     `json:"candidateCount"`
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

func defaultSafetySettings() []safetySetting {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]safetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, safetySetting{Category: c, Threshold: "BLOCK_MEDIUM_AND_ABOVE"})
	}
	return settings
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

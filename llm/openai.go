package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	rfhttp "github.com/randalmurphal/reviewflow/http"
)

// OpenAI API errors.
var (
	// ErrNoAPIKey indicates the client was built without an API key.
	ErrNoAPIKey = errors.New("openai API key not set")

	// ErrEmptyResponse indicates the API returned no choices.
	ErrEmptyResponse = errors.New("openai returned no choices")
)

// DefaultBaseURL is the OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com"

// DefaultModel is used when neither the client nor the request names one.
const DefaultModel = "gpt-4o"

// OpenAIConfig configures the OpenAI client.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string  // Default: DefaultBaseURL
	Model       string  // Default: DefaultModel
	Temperature float64 // Default temperature for requests that don't set one
	MaxTokens   int     // Default response cap, 0 = provider default
	HTTPClient  *http.Client
}

// OpenAI is a Client backed by the OpenAI chat-completions API.
type OpenAI struct {
	http        *rfhttp.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAI creates an OpenAI client. Returns ErrNoAPIKey if the key is
// missing.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	apiKey := cfg.APIKey
	client := rfhttp.NewClient(rfhttp.ClientConfig{
		Client:      cfg.HTTPClient,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		ServiceName: "openai",
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		},
	})

	return &OpenAI{
		http:        client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// chatRequest is the wire format for /v1/chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete implements Client.
func (c *OpenAI) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := c.temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, chatMessage{Role: string(RoleSystem), Content: req.SystemPrompt})
	}
	for _, m := range req.Messages {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}

	var resp chatResponse
	err := c.http.Post(ctx, "/v1/chat/completions", chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, &resp)
	if err != nil {
		return nil, classify(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &Error{Kind: KindOther, Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
	}

	return &CompletionResponse{
		Content: resp.Choices[0].Message.Content,
		Model:   resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

// classify maps transport errors into the service error taxonomy.
func classify(err error) error {
	kind := KindNetwork
	switch {
	case rfhttp.IsUnauthorized(err):
		kind = KindAuth
	case rfhttp.IsRateLimited(err):
		kind = KindRateLimit
	default:
		var apiErr *rfhttp.APIError
		if errors.As(err, &apiErr) {
			// A response arrived, so the network is fine.
			kind = KindOther
		}
	}
	return &Error{Kind: kind, Message: fmt.Sprintf("%v", err), Err: err}
}

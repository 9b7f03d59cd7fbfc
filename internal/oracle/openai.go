package oracle

import (
	"context"
	"errors"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"
)

const (
	defaultModel       = openai.ChatModelGPT3_5Turbo
	maxResponseTokens  = 150
	defaultTemperature = 0.3
)

// OpenAI is the production Client. A rate limiter paces bursts of field
// fills; there is deliberately no timeout here, the caller's context governs
// how long a call may hang.
type OpenAI struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

func NewOpenAI(apiKey, model string, requestsPerSec float64) *OpenAI {
	if model == "" {
		model = defaultModel
	}
	var lim *rate.Limiter
	if requestsPerSec > 0 {
		lim = rate.NewLimiter(rate.Limit(requestsPerSec), 1)
	}
	return &OpenAI{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		limiter: lim,
	}
}

func (c *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemRole),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(maxResponseTokens),
		Temperature: openai.Float(defaultTemperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &Error{Status: apiErr.StatusCode, Err: err}
		}
		return "", &Error{Err: err}
	}

	if len(res.Choices) == 0 {
		return "", &Error{Err: errors.New("no choices in response")}
	}
	out := strings.TrimSpace(res.Choices[0].Message.Content)
	if out == "" {
		return "", &Error{Err: errors.New("empty response body")}
	}
	return out, nil
}

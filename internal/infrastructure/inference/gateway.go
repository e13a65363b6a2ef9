// Package inference provides the completion gateway backed by an
// OpenAI-compatible HTTP endpoint, remote or local.
package inference

import (
	"context"
	"time"

	"github.com/sashabaranov/go-openai"

	"colloquy/dialogue-api/internal/config"
	"colloquy/dialogue-api/internal/domain/dialogue"
	"colloquy/dialogue-api/internal/infrastructure/metrics"
	"colloquy/dialogue-api/internal/utils/httpclients"
	completionclient "colloquy/dialogue-api/internal/utils/httpclients/completion"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// Gateway implements dialogue.CompletionGateway over one configured
// backend. Backend selection (remote API vs local node) is purely a
// configuration concern; callers see an identical contract either way.
type Gateway struct {
	client       *completionclient.CompletionClient
	backend      string
	apiKey       string
	defaultModel string
	timeout      time.Duration
}

var _ dialogue.CompletionGateway = (*Gateway)(nil)

// NewGateway constructs the gateway for the configured backend.
func NewGateway(cfg *config.Config) *Gateway {
	endpoint := cfg.CompletionEndpoint()
	client := httpclients.NewClient("CompletionClient")
	client.SetBaseURL(endpoint)

	apiKey := cfg.CompletionAPIKey
	if cfg.CompletionBackend == config.BackendLocal {
		// Local nodes are unauthenticated.
		apiKey = ""
	}

	return &Gateway{
		client:       completionclient.NewCompletionClient(client, "CompletionClient", endpoint),
		backend:      cfg.CompletionBackend,
		apiKey:       apiKey,
		defaultModel: cfg.CompletionModel,
		timeout:      cfg.CompletionTimeout,
	}
}

// Complete issues one blocking completion call. A hung backend is bounded
// by the configured timeout so one stuck call cannot stall a whole
// multi-role conversation.
func (g *Gateway) Complete(ctx context.Context, messages []dialogue.Message, params dialogue.Params) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req := g.buildRequest(messages, params)

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, g.apiKey, req)
	metrics.RecordCompletionDuration(req.Model, g.backend, false, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordCompletionError(g.backend, "request")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeCompletion, "completion backend call failed", err, "2c7e9b43-8d1a-4f60-b5e2-0a6c4d8e2b17")
	}
	if len(resp.Choices) == 0 {
		metrics.RecordCompletionError(g.backend, "empty_choices")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeCompletion, "completion backend returned no choices", nil, "4e9a1c65-0f3b-4d82-a7c4-2b8e6f0a4d39")
	}

	return resp.Choices[0].Message.Content, nil
}

// CompleteStream issues one streaming completion call, forwarding content
// chunks in emission order. Failures surface on the error channel as the
// same completion error kind Complete fails with.
func (g *Gateway) CompleteStream(ctx context.Context, messages []dialogue.Message, params dialogue.Params) (<-chan string, <-chan error) {
	out := make(chan string, 16)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)

		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		req := g.buildRequest(messages, params)

		start := time.Now()
		chunks, innerErrs := g.client.StreamChatCompletion(ctx, g.apiKey, req)

		for chunk := range chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				metrics.RecordCompletionError(g.backend, "canceled")
				errs <- platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeCompletion, "completion stream canceled", ctx.Err(), "8b3d5f27-6e0c-4a94-b1d8-3f5a7c9e1b63")
				return
			}
		}
		metrics.RecordCompletionDuration(req.Model, g.backend, true, time.Since(start).Seconds())

		if err := <-innerErrs; err != nil {
			metrics.RecordCompletionError(g.backend, "stream")
			errs <- platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeCompletion, "completion backend stream failed", err, "d1f7a3b9-4c8e-4260-9e5b-7a1d3f5c8e04")
		}
	}()

	return out, errs
}

func (g *Gateway) buildRequest(messages []dialogue.Message, params dialogue.Params) openai.ChatCompletionRequest {
	model := params.Model
	if model == "" {
		model = g.defaultModel
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
	}
}

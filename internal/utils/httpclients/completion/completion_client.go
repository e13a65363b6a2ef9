// Package completion wraps an OpenAI-compatible chat completions endpoint
// behind blocking and streaming calls.
package completion

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"colloquy/dialogue-api/internal/infrastructure/logger"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

const (
	channelBufferSize    = 100
	errorBufferSize      = 10
	dataPrefix           = "data: "
	doneMarker           = "[DONE]"
	scannerInitialBuffer = 12 * 1024        // 12KB
	scannerMaxBuffer     = 10 * 1024 * 1024 // 10MB
)

type streamDelta struct {
	Content string `json:"content"`
}

type streamChoice struct {
	Delta streamDelta `json:"delta"`
}

// CompletionClient talks to one chat completions backend.
type CompletionClient struct {
	client  *resty.Client
	baseURL string
	name    string
}

// NewCompletionClient wraps the given resty client for baseURL.
func NewCompletionClient(client *resty.Client, name, baseURL string) *CompletionClient {
	return &CompletionClient{
		client:  client,
		baseURL: normalizeBaseURL(baseURL),
		name:    name,
	}
}

// CreateChatCompletion issues one blocking completion request.
func (c *CompletionClient) CreateChatCompletion(ctx context.Context, apiKey string, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx, apiKey).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, "completion request failed")
	}
	return &respBody, nil
}

// StreamChatCompletion issues one streaming completion request and delivers
// content deltas on the returned data channel in emission order. The data
// channel is closed when the backend signals the end of the stream; a
// transport or decode failure is delivered on the error channel before both
// channels close.
func (c *CompletionClient) StreamChatCompletion(ctx context.Context, apiKey string, request openai.ChatCompletionRequest) (<-chan string, <-chan error) {
	request.Stream = true

	dataChan := make(chan string, channelBufferSize)
	errChan := make(chan error, errorBufferSize)

	go func() {
		defer close(dataChan)
		defer close(errChan)

		resp, err := c.doStreamingRequest(ctx, apiKey, request)
		if err != nil {
			errChan <- err
			return
		}
		defer func() {
			if closeErr := resp.RawResponse.Body.Close(); closeErr != nil {
				log := logger.GetLogger()
				log.Error().Err(closeErr).Str("client", c.name).Msg("unable to close response body")
			}
		}()

		scanner := bufio.NewScanner(resp.RawResponse.Body)
		scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

		for scanner.Scan() {
			if ctx.Err() != nil {
				errChan <- ctx.Err()
				return
			}

			data, found := strings.CutPrefix(scanner.Text(), dataPrefix)
			if !found {
				continue
			}
			if data == doneMarker {
				return
			}

			var chunk struct {
				Choices []streamChoice `json:"choices"`
			}
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				log := logger.GetLogger()
				log.Error().Err(err).Str("client", c.name).Str("data", data).Msg("failed to parse stream chunk JSON")
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content == "" {
					continue
				}
				select {
				case dataChan <- choice.Delta.Content:
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				}
			}
		}

		if err := scanner.Err(); err != nil {
			errChan <- err
		}
	}()

	return dataChan, errChan
}

func (c *CompletionClient) prepareRequest(ctx context.Context, apiKey string) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}
	return req
}

func (c *CompletionClient) doStreamingRequest(ctx context.Context, apiKey string, request openai.ChatCompletionRequest) (*resty.Response, error) {
	req := c.prepareRequest(ctx, apiKey).
		SetBody(request).
		SetDoNotParseResponse(true)

	if req.Header.Get("Accept-Encoding") == "" {
		req.SetHeader("Accept-Encoding", "identity")
	}

	resp, err := req.Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(ctx, resp, "streaming completion request failed")
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, "streaming completion request failed: empty response body", nil, "6e2d8a14-0b5c-4f7e-9a3d-1c8e6b0f4a29")
	}

	return resp, nil
}

func (c *CompletionClient) endpoint(path string) string {
	if path == "" {
		return c.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if c.baseURL == "" {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *CompletionClient) errorFromResponse(ctx context.Context, resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "f4b0c2d8-6a1e-4e5b-8c7f-9d3a5e1b7c40")
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "0a6c4e82-3d5f-4b1a-9e7c-2f8d6a0b4c61")
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, message, nil, "b2e8d0f6-5c3a-4d9e-8b1f-7a4c2e6d0f83")
	}
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal, fmt.Sprintf("%s: %s", message, trimmed), nil, "c8f2a4d0-1e7b-4c5d-9f3a-6b0e8d2c4f15")
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/")
}

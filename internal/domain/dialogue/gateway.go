// Package dialogue implements the orchestration engine that drives
// single-role and multi-role conversations over a completion backend.
package dialogue

import "context"

// Message is one entry of an ordered chat exchange sent to the backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message roles understood by every backend.
const (
	MessageRoleSystem = "system"
	MessageRoleUser   = "user"
)

// Params are per-call generation parameters. Model may be empty, in which
// case the gateway's configured default applies.
type Params struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
}

// CompletionGateway abstracts the text-generation backend. Complete blocks
// until the full response text is available. CompleteStream sends text
// chunks on the data channel in emission order and closes it when the
// stream ends; a transport or backend failure is delivered on the error
// channel. Both fail with a completion error kind regardless of backend, so
// the orchestrator never branches on transport details.
type CompletionGateway interface {
	Complete(ctx context.Context, messages []Message, params Params) (string, error)
	CompleteStream(ctx context.Context, messages []Message, params Params) (<-chan string, <-chan error)
}

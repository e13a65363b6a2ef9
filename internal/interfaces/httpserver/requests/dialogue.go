// Package requests holds the HTTP request bodies accepted by the API.
package requests

// AskRole is the request body for single role asks. User is optional and
// defaults to the operator account.
type AskRole struct {
	Prompt string `json:"prompt" validate:"required"`
	Role   string `json:"role" validate:"required"`
	User   string `json:"user" validate:"omitempty,max=150"`
}

// FullDialogue is the request body for multi role dialogues. Debate switches
// the turn prompt to its confrontational variant.
type FullDialogue struct {
	Prompt string `json:"prompt" validate:"required"`
	Debate bool   `json:"debate"`
	User   string `json:"user" validate:"omitempty,max=150"`
}

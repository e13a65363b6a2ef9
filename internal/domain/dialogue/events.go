package dialogue

// Event types emitted by a streamed dialogue, in emission order: one start,
// then per role a thinking followed by response or error, then thinking and
// synthesis or error for the final step, then one complete.
const (
	EventStart     = "start"
	EventThinking  = "thinking"
	EventResponse  = "response"
	EventError     = "error"
	EventSynthesis = "synthesis"
	EventComplete  = "complete"
)

// Event is one externally observable step of a streamed dialogue.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StartData is the payload of a start event.
type StartData struct {
	Prompt string `json:"prompt"`
}

// ThinkingData announces the turn about to be attempted.
type ThinkingData struct {
	Turn int    `json:"turn"`
	Role string `json:"role"`
}

// ErrorData reports a failed turn without exposing backend internals.
type ErrorData struct {
	Turn  int    `json:"turn"`
	Role  string `json:"role"`
	Error string `json:"error"`
}

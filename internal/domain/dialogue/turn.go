package dialogue

import "strings"

// SpeakerSynthesis is the sentinel speaker for the final aggregating turn.
const SpeakerSynthesis = "Synthesis"

// Turn is one contribution to a conversation, in speaking order.
type Turn struct {
	TurnNumber int    `json:"turn"`
	Speaker    string `json:"role"`
	Response   string `json:"response"`
}

// Conversation is the transient aggregate for one orchestration run. It is
// never persisted as a unit; history records flattened exchanges instead.
type Conversation struct {
	OriginalPrompt string  `json:"original_prompt"`
	Turns          []Turn  `json:"conversation"`
	FinalSynthesis *string `json:"final_analysis"`
}

// appendTurn records one contribution at the given attempt index. Skipped
// roles leave a gap in the numbering; the sequence stays strictly
// increasing either way.
func (c *Conversation) appendTurn(number int, speaker, response string) Turn {
	t := Turn{
		TurnNumber: number,
		Speaker:    speaker,
		Response:   response,
	}
	c.Turns = append(c.Turns, t)
	return t
}

// TranscriptContext derives the context string fed to the next turn: the
// concatenation, in turn order, of "{speaker}: {response}" blocks. Deriving
// it from the turn list each time keeps prompt construction a pure function
// of the turns recorded so far.
func TranscriptContext(turns []Turn) string {
	var sb strings.Builder
	for _, t := range turns {
		sb.WriteString("\n\n")
		sb.WriteString(t.Speaker)
		sb.WriteString(": ")
		sb.WriteString(t.Response)
	}
	return sb.String()
}

package dialogue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SpeakerResponse is one {role, response} pair as emitted by the model when
// asked for structured dialogue output.
type SpeakerResponse struct {
	Speaker  string `json:"role"`
	Response string `json:"response"`
}

// ParseKind tags how a raw completion was turned into structured pairs.
type ParseKind string

const (
	// ParsedTurns means the raw text decoded cleanly into pairs.
	ParsedTurns ParseKind = "parsed_turns"
	// FallbackSingleTurn means decoding failed and the raw text was wrapped
	// as a single pair attributed to the primary speaker.
	FallbackSingleTurn ParseKind = "fallback_single_turn"
)

// ParsedResponse is the tagged result of parsing a structured completion.
// Raw always holds the original pre-parse text; that is what history
// persists regardless of parse outcome.
type ParsedResponse struct {
	Kind  ParseKind         `json:"kind"`
	Pairs []SpeakerResponse `json:"pairs"`
	Raw   string            `json:"-"`
}

// StripCodeFence removes a surrounding markdown code fence, with or without
// a language tag, leaving other text untouched.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	body := s[3:]
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		// Drop the language tag line, e.g. "```json".
		first := strings.TrimSpace(body[:idx])
		if first == "" || !strings.ContainsAny(first, " \t{}[]") {
			body = body[idx+1:]
		}
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

// ParseSpeakerResponses strictly decodes raw as a JSON array of
// {role, response} pairs after stripping any code fence. A single JSON
// object is accepted as a one-element array.
func ParseSpeakerResponses(raw string) ([]SpeakerResponse, error) {
	clean := StripCodeFence(raw)
	if clean == "" {
		return nil, fmt.Errorf("empty response text")
	}

	if strings.HasPrefix(clean, "{") {
		var single SpeakerResponse
		if err := json.Unmarshal([]byte(clean), &single); err != nil {
			return nil, fmt.Errorf("decode response object: %w", err)
		}
		if single.Speaker == "" {
			return nil, fmt.Errorf("response object missing role")
		}
		return []SpeakerResponse{single}, nil
	}

	var pairs []SpeakerResponse
	if err := json.Unmarshal([]byte(clean), &pairs); err != nil {
		return nil, fmt.Errorf("decode response array: %w", err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("response array is empty")
	}
	for i, p := range pairs {
		if p.Speaker == "" {
			return nil, fmt.Errorf("response pair %d missing role", i)
		}
	}
	return pairs, nil
}

// ParseOrFallback decodes raw into pairs, falling back to a single pair
// attributed to fallbackSpeaker when decoding fails. Parse failures here
// are recoverable; they never surface to the caller.
func ParseOrFallback(raw, fallbackSpeaker string) ParsedResponse {
	pairs, err := ParseSpeakerResponses(raw)
	if err != nil {
		return ParsedResponse{
			Kind: FallbackSingleTurn,
			Pairs: []SpeakerResponse{
				{Speaker: fallbackSpeaker, Response: strings.TrimSpace(raw)},
			},
			Raw: raw,
		}
	}
	return ParsedResponse{Kind: ParsedTurns, Pairs: pairs, Raw: raw}
}

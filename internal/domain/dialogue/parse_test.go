package dialogue

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no fence",
			input: `[{"role":"A","response":"x"}]`,
			want:  `[{"role":"A","response":"x"}]`,
		},
		{
			name:  "json fence",
			input: "```json\n[{\"role\":\"A\",\"response\":\"x\"}]\n```",
			want:  `[{"role":"A","response":"x"}]`,
		},
		{
			name:  "bare fence",
			input: "```\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "fence with surrounding whitespace",
			input: "  ```json\n[1]\n```  ",
			want:  `[1]`,
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFence(tt.input); got != tt.want {
				t.Errorf("StripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSpeakerResponses(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{
			name:  "array of pairs",
			input: `[{"role":"Mystic Sage","response":"All is one."},{"role":"Synthesis","response":"Agreement."}]`,
			want:  2,
		},
		{
			name:  "fenced array",
			input: "```json\n[{\"role\":\"Void Explorer\",\"response\":\"Emptiness speaks.\"}]\n```",
			want:  1,
		},
		{
			name:  "single object accepted as one pair",
			input: `{"role":"Alchemist","response":"Transmute."}`,
			want:  1,
		},
		{
			name:    "prose is rejected",
			input:   "I think the answer is simply forty-two.",
			wantErr: true,
		},
		{
			name:    "empty array rejected",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "pair missing role rejected",
			input:   `[{"response":"orphaned"}]`,
			wantErr: true,
		},
		{
			name:    "empty input rejected",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpeakerResponses(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSpeakerResponses() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(got) != tt.want {
				t.Errorf("ParseSpeakerResponses() returned %d pairs, want %d", len(got), tt.want)
			}
		})
	}
}

func TestParseOrFallback(t *testing.T) {
	t.Run("clean parse is tagged ParsedTurns", func(t *testing.T) {
		res := ParseOrFallback(`[{"role":"Dream Interpreter","response":"A symbol."}]`, "Dream Interpreter")
		if res.Kind != ParsedTurns {
			t.Fatalf("Kind = %v, want %v", res.Kind, ParsedTurns)
		}
		if len(res.Pairs) != 1 || res.Pairs[0].Speaker != "Dream Interpreter" {
			t.Errorf("unexpected pairs: %+v", res.Pairs)
		}
	})

	t.Run("prose falls back to a single pair", func(t *testing.T) {
		raw := "The dream means growth."
		res := ParseOrFallback(raw, "Dream Interpreter")
		if res.Kind != FallbackSingleTurn {
			t.Fatalf("Kind = %v, want %v", res.Kind, FallbackSingleTurn)
		}
		if len(res.Pairs) != 1 {
			t.Fatalf("expected exactly one fallback pair, got %d", len(res.Pairs))
		}
		if res.Pairs[0].Speaker != "Dream Interpreter" || res.Pairs[0].Response != raw {
			t.Errorf("fallback pair = %+v", res.Pairs[0])
		}
		if res.Raw != raw {
			t.Errorf("Raw = %q, want original text", res.Raw)
		}
	})
}

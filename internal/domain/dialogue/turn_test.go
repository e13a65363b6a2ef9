package dialogue

import "testing"

func TestTranscriptContext(t *testing.T) {
	turns := []Turn{
		{TurnNumber: 1, Speaker: "Mystic Sage", Response: "Being and non-being arise together."},
		{TurnNumber: 2, Speaker: "Quantum Philosopher", Response: "Observation collapses possibility."},
	}

	got := TranscriptContext(turns)
	want := "\n\nMystic Sage: Being and non-being arise together." +
		"\n\nQuantum Philosopher: Observation collapses possibility."
	if got != want {
		t.Errorf("TranscriptContext() = %q, want %q", got, want)
	}
}

func TestTranscriptContextEmpty(t *testing.T) {
	if got := TranscriptContext(nil); got != "" {
		t.Errorf("TranscriptContext(nil) = %q, want empty", got)
	}
}

// Re-deriving the context from the turn list must be stable: feeding the
// same turns twice produces byte-identical strings, so prompt construction
// for the next turn is a pure function of the recorded turns.
func TestTranscriptContextIdempotent(t *testing.T) {
	turns := []Turn{
		{TurnNumber: 1, Speaker: "Void Explorer", Response: "The space between holds all potential."},
		{TurnNumber: 3, Speaker: "Alchemist", Response: "Transformation needs a vessel."},
	}

	first := TranscriptContext(turns)
	second := TranscriptContext(turns)
	if first != second {
		t.Errorf("transcript derivation is not stable:\n%q\n%q", first, second)
	}
}

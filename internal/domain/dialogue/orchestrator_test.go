package dialogue

import (
	"context"
	"errors"
	"strings"
	"testing"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

func threeTestRoles() []*role.Role {
	return []*role.Role{
		newTestRole("Mystic Sage", "Explores mysteries.", "You are a Mystic Sage."),
		newTestRole("Quantum Philosopher", "Bridges physics and philosophy.", "You are a Quantum Philosopher."),
		newTestRole("Void Explorer", "Contemplates emptiness.", "You are a Void Explorer."),
	}
}

func TestFullDialogueAllSucceed(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		if messages[0].Content == synthesisSystemPrompt {
			return "woven conclusion", nil
		}
		return "a perspective", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	conv, err := orch.FullDialogue(context.Background(), "What is time?", false)
	if err != nil {
		t.Fatalf("FullDialogue() error = %v", err)
	}

	if len(conv.Turns) != 4 {
		t.Fatalf("got %d turns, want 4 (3 roles + synthesis)", len(conv.Turns))
	}
	for i, turn := range conv.Turns {
		if i > 0 && conv.Turns[i].TurnNumber <= conv.Turns[i-1].TurnNumber {
			t.Errorf("turn numbers not strictly increasing: %d after %d", turn.TurnNumber, conv.Turns[i-1].TurnNumber)
		}
	}
	last := conv.Turns[len(conv.Turns)-1]
	if last.Speaker != SpeakerSynthesis {
		t.Errorf("last speaker = %q, want %q", last.Speaker, SpeakerSynthesis)
	}
	if conv.FinalSynthesis == nil || *conv.FinalSynthesis != "woven conclusion" {
		t.Errorf("FinalSynthesis = %v, want woven conclusion", conv.FinalSynthesis)
	}
}

func TestFullDialogueSkipsFailedRole(t *testing.T) {
	responses := map[string]string{
		"You are a Mystic Sage.":   "order emerges from stillness",
		"You are a Void Explorer.": "emptiness answers",
	}
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		system := messages[0].Content
		if system == synthesisSystemPrompt {
			return "final synthesis", nil
		}
		if system == "You are a Quantum Philosopher." {
			return "", errors.New("backend exploded")
		}
		if resp, ok := responses[system]; ok {
			return resp, nil
		}
		return "", errors.New("unexpected system prompt: " + system)
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	conv, err := orch.FullDialogue(context.Background(), "What is time?", false)
	if err != nil {
		t.Fatalf("FullDialogue() error = %v", err)
	}

	if len(conv.Turns) != 3 {
		t.Fatalf("got %d turns, want 3 (2 roles + synthesis)", len(conv.Turns))
	}
	for _, turn := range conv.Turns {
		if turn.Speaker == "Quantum Philosopher" {
			t.Error("failed role must not contribute a turn")
		}
	}

	// The third role's prompt must exclude the failed role entirely, not
	// carry a placeholder.
	for i := 0; i < gw.callCount(); i++ {
		c := gw.call(i)
		if c.messages[0].Content != "You are a Void Explorer." {
			continue
		}
		userMsg := c.messages[1].Content
		if strings.Contains(userMsg, "Quantum Philosopher:") {
			t.Error("transcript fed to later roles must exclude the failed role's contribution")
		}
		if !strings.Contains(userMsg, "Mystic Sage: order emerges from stillness") {
			t.Error("transcript fed to later roles must include earlier successful turns")
		}
	}
}

func TestFullDialogueSynthesisFailureIsFatal(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		if messages[0].Content == synthesisSystemPrompt {
			return "", platformerrors.NewError(context.Background(), platformerrors.LayerInfrastructure, platformerrors.ErrorTypeCompletion, "completion backend failed", errors.New("timeout"), "")
		}
		return "a perspective", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	_, err := orch.FullDialogue(context.Background(), "What is time?", false)
	if err == nil {
		t.Fatal("expected synthesis failure to fail the whole dialogue")
	}
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeCompletion) {
		t.Errorf("error type not preserved through wrapping: %v", err)
	}
}

func TestFullDialogueNoRoles(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		t.Fatal("gateway must not be called with an empty registry")
		return "", nil
	}}
	orch, _ := newTestOrchestrator(nil, gw)

	conv, err := orch.FullDialogue(context.Background(), "What is time?", false)
	if err != nil {
		t.Fatalf("FullDialogue() error = %v", err)
	}
	if len(conv.Turns) != 0 || conv.FinalSynthesis != nil {
		t.Errorf("empty registry should yield an empty conversation, got %+v", conv)
	}
}

func TestFullDialogueDebateModePromptVariant(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		if messages[0].Content == synthesisSystemPrompt {
			return "synthesis", nil
		}
		return "a position", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	if _, err := orch.FullDialogue(context.Background(), "Is free will real?", true); err != nil {
		t.Fatalf("FullDialogue() error = %v", err)
	}

	first := gw.call(0).messages[1].Content
	if !strings.Contains(first, "first to respond") {
		t.Error("first speaker should get the introduce-your-position variant")
	}
	second := gw.call(1).messages[1].Content
	if !strings.Contains(second, "Challenge or counter-argue") {
		t.Error("subsequent speakers in debate mode should get the challenge variant")
	}
}

func TestStreamFullDialogueEventSequence(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		system := messages[0].Content
		if system == synthesisSystemPrompt {
			return "final synthesis", nil
		}
		if system == "You are a Quantum Philosopher." {
			return "", errors.New("backend exploded")
		}
		return "a perspective", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	var got []string
	for ev := range orch.StreamFullDialogue(context.Background(), "What is time?", false) {
		got = append(got, ev.Type)
	}

	want := []string{
		EventStart,
		EventThinking, EventResponse,
		EventThinking, EventError,
		EventThinking, EventResponse,
		EventThinking, EventSynthesis,
		EventComplete,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q (sequence %v)", i, got[i], want[i], got)
		}
	}
}

func TestStreamFullDialogueSynthesisErrorStillCompletes(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		if messages[0].Content == synthesisSystemPrompt {
			return "", errors.New("backend exploded")
		}
		return "a perspective", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	var got []string
	for ev := range orch.StreamFullDialogue(context.Background(), "What is time?", false) {
		got = append(got, ev.Type)
	}

	if got[len(got)-1] != EventComplete {
		t.Errorf("stream must terminate with complete, got %v", got)
	}
	sawSynthError := false
	for _, typ := range got {
		if typ == EventSynthesis {
			t.Error("failed synthesis must not emit a synthesis event")
		}
		if typ == EventError {
			sawSynthError = true
		}
	}
	if !sawSynthError {
		t.Error("failed synthesis must emit an error event")
	}
}

func TestSingleRoleUnknownRole(t *testing.T) {
	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		t.Fatal("gateway must not be called for an unknown role")
		return "", nil
	}}
	orch, hist := newTestOrchestrator(threeTestRoles(), gw)

	_, err := orch.SingleRole(context.Background(), "Pattern Weaver", "What is time?", "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if hist.count() != 0 {
		t.Error("no history may be written for an unknown role")
	}
}

func TestSingleRoleSoloDecision(t *testing.T) {
	dream := newTestRole("Dream Interpreter", "Explores symbols.", "You are a Dream Interpreter.")
	quantum := newTestRole("Quantum Philosopher", "Bridges physics and philosophy.", "You are a Quantum Philosopher.", dream)

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		switch call {
		case 0:
			return "```json\n{\"should_collaborate\": false, \"chosen_collaborator\": null, \"reasoning\": \"self-sufficient\"}\n```", nil
		case 1:
			return `[{"role":"Quantum Philosopher","response":"Meaning is observer-dependent."}]`, nil
		}
		return "", errors.New("unexpected call")
	}}
	orch, hist := newTestOrchestrator([]*role.Role{dream, quantum}, gw)

	res, err := orch.SingleRole(context.Background(), "Quantum Philosopher", "What is the meaning of life?", "")
	if err != nil {
		t.Fatalf("SingleRole() error = %v", err)
	}

	if res.Response.Kind != ParsedTurns {
		t.Errorf("Kind = %v, want %v", res.Response.Kind, ParsedTurns)
	}
	if len(res.Response.Pairs) != 1 || res.Response.Pairs[0].Speaker != "Quantum Philosopher" {
		t.Errorf("unexpected pairs: %+v", res.Response.Pairs)
	}
	if res.Collaboration == nil || res.Collaboration.ShouldCollaborate {
		t.Errorf("expected a solo decision, got %+v", res.Collaboration)
	}
	if hist.count() != 1 {
		t.Fatalf("expected exactly one history record, got %d", hist.count())
	}
	recs, _ := hist.FindByFilter(context.Background(), history.Filter{}, nil)
	if recs[0].RoleName != "Quantum Philosopher" {
		t.Errorf("history role = %q", recs[0].RoleName)
	}
	if recs[0].Response != `[{"role":"Quantum Philosopher","response":"Meaning is observer-dependent."}]` {
		t.Errorf("history must store the raw pre-parse text, got %q", recs[0].Response)
	}
}

func TestSingleRoleCollaboration(t *testing.T) {
	dream := newTestRole("Dream Interpreter", "Explores symbols.", "You are a Dream Interpreter.")
	quantum := newTestRole("Quantum Philosopher", "Bridges physics and philosophy.", "You are a Quantum Philosopher.", dream)

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		switch call {
		case 0:
			return `{"should_collaborate": true, "chosen_collaborator": "Dream Interpreter", "reasoning": "dream symbolism applies"}`, nil
		case 1:
			return `[{"role":"Quantum Philosopher","response":"Superposition."},{"role":"Dream Interpreter","response":"A shared dream."},{"role":"Synthesis","response":"Both collapse into one."}]`, nil
		}
		return "", errors.New("unexpected call")
	}}
	orch, _ := newTestOrchestrator([]*role.Role{dream, quantum}, gw)

	res, err := orch.SingleRole(context.Background(), "Quantum Philosopher", "What are dreams made of?", "")
	if err != nil {
		t.Fatalf("SingleRole() error = %v", err)
	}

	system := gw.call(1).messages[0].Content
	if !strings.Contains(system, "hosting a dialogue between Quantum Philosopher and Dream Interpreter") {
		t.Errorf("collaboration should produce the dual-persona system prompt, got %q", system)
	}
	if !strings.Contains(system, "dream symbolism applies") {
		t.Error("dual-persona prompt should carry the resolver's reasoning")
	}
	if len(res.Response.Pairs) != 3 {
		t.Errorf("got %d pairs, want 3", len(res.Response.Pairs))
	}
}

func TestSingleRoleHallucinatedCollaboratorFailsClosed(t *testing.T) {
	// Empty collaborator list, but the model claims a collaborator anyway.
	void := newTestRole("Void Explorer", "Contemplates emptiness.", "You are a Void Explorer.")

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		switch call {
		case 0:
			return `{"should_collaborate": true, "chosen_collaborator": "Ghost Role", "reasoning": "hallucinated"}`, nil
		case 1:
			return "Emptiness is not absence.", nil
		}
		return "", errors.New("unexpected call")
	}}
	orch, _ := newTestOrchestrator([]*role.Role{void}, gw)

	res, err := orch.SingleRole(context.Background(), "Void Explorer", "What is nothing?", "")
	if err != nil {
		t.Fatalf("SingleRole() must fail closed, not error: %v", err)
	}

	if system := gw.call(1).messages[0].Content; system != "You are a Void Explorer." {
		t.Errorf("fail-closed system prompt must be the role's own template, got %q", system)
	}
	if res.Response.Kind != FallbackSingleTurn {
		t.Errorf("prose answer should fall back to a single turn, got %v", res.Response.Kind)
	}
}

func TestSingleRoleCanceledCallerSkipsHistory(t *testing.T) {
	void := newTestRole("Void Explorer", "Contemplates emptiness.", "You are a Void Explorer.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		switch call {
		case 0:
			return `{"should_collaborate": false, "chosen_collaborator": null, "reasoning": "solo"}`, nil
		case 1:
			// Caller goes away while the answer is being generated.
			cancel()
			return "Emptiness is not absence.", nil
		}
		return "", errors.New("unexpected call")
	}}
	orch, hist := newTestOrchestrator([]*role.Role{void}, gw)

	res, err := orch.SingleRole(ctx, "Void Explorer", "What is nothing?", "")
	if err != nil {
		t.Fatalf("SingleRole() error = %v", err)
	}
	if res.Response.Raw != "Emptiness is not absence." {
		t.Errorf("completed answer must still be returned, got %+v", res.Response)
	}
	if hist.count() != 0 {
		t.Errorf("a canceled caller must leave no history record, got %d", hist.count())
	}
}

func TestStreamFullDialogueStopsBetweenTurnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		// Cancel from inside the first turn so the between-turns check is
		// what stops the dialogue, not the gateway.
		cancel()
		return "a perspective", nil
	}}
	orch, _ := newTestOrchestrator(threeTestRoles(), gw)

	var got []string
	for ev := range orch.StreamFullDialogue(ctx, "What is time?", false) {
		got = append(got, ev.Type)
	}

	if gw.callCount() != 1 {
		t.Errorf("no turns may run after cancellation, got %d gateway calls", gw.callCount())
	}
	for _, typ := range got {
		if typ == EventComplete {
			t.Errorf("canceled stream must not report completion, got %v", got)
		}
	}
}

func TestSingleRoleMalformedDecision(t *testing.T) {
	dream := newTestRole("Dream Interpreter", "Explores symbols.", "You are a Dream Interpreter.")
	quantum := newTestRole("Quantum Philosopher", "Bridges physics and philosophy.", "You are a Quantum Philosopher.", dream)

	gw := &fakeGateway{responder: func(call int, messages []Message) (string, error) {
		return "I would rather answer in prose.", nil
	}}
	orch, hist := newTestOrchestrator([]*role.Role{dream, quantum}, gw)

	_, err := orch.SingleRole(context.Background(), "Quantum Philosopher", "What is the meaning of life?", "")
	if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeMalformedDecision) {
		t.Fatalf("expected malformed-decision error, got %v", err)
	}
	if gw.callCount() != 1 {
		t.Errorf("malformed decision must not be retried, got %d calls", gw.callCount())
	}
	if hist.count() != 0 {
		t.Error("no history may be written after a malformed decision")
	}
}

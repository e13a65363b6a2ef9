package dialogue

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"colloquy/dialogue-api/internal/domain/history"
	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/domain/user"
	"colloquy/dialogue-api/internal/infrastructure/logger"
	"colloquy/dialogue-api/internal/infrastructure/metrics"
	"colloquy/dialogue-api/internal/infrastructure/observability"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

const tracerName = "dialogue-api"

// Generation parameters per orchestration stage.
var (
	singleRoleParams = Params{Temperature: 0.7, MaxTokens: 500, TopP: 1.0}
	turnParams       = Params{Temperature: 0.7, MaxTokens: 200, TopP: 1.0}
	synthesisParams  = Params{Temperature: 0.7, MaxTokens: 400, TopP: 1.0}
)

// Orchestrator drives single-role and full multi-role conversations. Turns
// are strictly sequential: each turn's prompt embeds the transcript of all
// prior turns, so no parallel fan-out across roles is possible. The
// orchestrator holds no per-conversation state between calls; independent
// conversations may run concurrently.
type Orchestrator struct {
	roles    *role.Service
	history  *history.Service
	gateway  CompletionGateway
	resolver *Resolver
}

// NewOrchestrator constructs an Orchestrator with its dependencies.
func NewOrchestrator(roles *role.Service, historySvc *history.Service, gateway CompletionGateway, resolver *Resolver) *Orchestrator {
	return &Orchestrator{
		roles:    roles,
		history:  historySvc,
		gateway:  gateway,
		resolver: resolver,
	}
}

// SingleRoleResult is the outcome of one single-role ask. Collaboration is
// the resolver's verdict; Response.Raw holds the pre-parse completion text
// that history persists.
type SingleRoleResult struct {
	Role          *role.Role
	Response      ParsedResponse
	Collaboration *Decision
}

// SingleRole answers one question as the named role, optionally in dialogue
// with one collaborator chosen by the resolver. The completed exchange is
// recorded to history unless the caller has already gone away.
func (o *Orchestrator) SingleRole(ctx context.Context, roleName, userPrompt, username string) (*SingleRoleResult, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Orchestrator.SingleRole")
	defer span.End()

	observability.AddSpanAttributes(ctx,
		attribute.String("dialogue.role", roleName),
	)

	r, err := o.roles.GetByName(ctx, roleName)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}

	decision, err := o.resolver.Decide(ctx, r, userPrompt, r.Collaborators)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}
	observability.AddSpanAttributes(ctx,
		attribute.Bool("dialogue.collaborate", decision.ShouldCollaborate),
	)

	systemPrompt := o.systemPromptFor(ctx, r, decision)

	params := singleRoleParams
	params.Model = r.ModelName

	raw, err := o.gateway.Complete(ctx, []Message{
		{Role: MessageRoleSystem, Content: systemPrompt},
		{Role: MessageRoleUser, Content: userPrompt},
	}, params)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate response")
	}

	parsed := ParseOrFallback(raw, r.Name)

	// An abandoned call whose result was never delivered must not leave an
	// audit row behind.
	if ctx.Err() == nil {
		if username == "" {
			username = user.OperatorUsername
		}
		o.history.Record(context.WithoutCancel(ctx), username, r.Name, userPrompt, raw)
	}

	return &SingleRoleResult{
		Role:          r,
		Response:      parsed,
		Collaboration: decision,
	}, nil
}

// systemPromptFor builds the system prompt for a single-role ask. A
// collaboration verdict naming a role outside the subject's collaborator
// list fails closed to the role's own prompt template; it never errors.
func (o *Orchestrator) systemPromptFor(ctx context.Context, r *role.Role, decision *Decision) string {
	if decision.ShouldCollaborate {
		if decision.ChosenCollaborator != nil {
			for _, c := range r.Collaborators {
				if c.Name == *decision.ChosenCollaborator {
					return dualPersonaSystemPrompt(r, c, decision.Reasoning)
				}
			}
		}
		chosen := ""
		if decision.ChosenCollaborator != nil {
			chosen = *decision.ChosenCollaborator
		}
		log := logger.GetLogger()
		log.Error().
			Str("role", r.Name).
			Str("chosen_collaborator", chosen).
			Msg("collaborator not found, answering solo")
		return r.PromptTemplate
	}

	return singlePersonaSystemPrompt(r)
}

// FullDialogue runs every registered role in registration order against the
// prompt, threading the accumulated transcript between turns, then appends
// a synthesis turn. A per-role completion failure skips that role's turn;
// a synthesis failure fails the whole call.
func (o *Orchestrator) FullDialogue(ctx context.Context, userPrompt string, debateMode bool) (*Conversation, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Orchestrator.FullDialogue")
	defer span.End()

	observability.AddSpanAttributes(ctx,
		attribute.Bool("dialogue.debate", debateMode),
	)

	participants, err := o.roles.List(ctx, nil)
	if err != nil {
		observability.RecordError(ctx, err)
		return nil, err
	}
	observability.AddSpanAttributes(ctx,
		attribute.Int("dialogue.participants", len(participants)),
	)

	conv := &Conversation{OriginalPrompt: userPrompt}

	for i, r := range participants {
		if ctx.Err() != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "dialogue canceled", ctx.Err(), "5a1c3e75-2d4b-4f68-9e0a-7b9d1f3c5e87")
		}

		raw, err := o.roleTurn(ctx, r, userPrompt, conv.Turns, debateMode)
		if err != nil {
			o.logSkippedTurn(ctx, r.Name, i+1, err)
			continue
		}

		conv.appendTurn(i+1, r.Name, raw)
		metrics.RecordDialogueTurn(metrics.TurnGenerated)
	}

	if len(conv.Turns) == 0 {
		return conv, nil
	}

	synthesis, err := o.synthesize(ctx, userPrompt, conv.Turns)
	if err != nil {
		metrics.RecordSynthesis(metrics.SynthesisFailed)
		observability.RecordError(ctx, err)
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate synthesis")
	}

	conv.appendTurn(len(participants)+1, SpeakerSynthesis, synthesis)
	conv.FinalSynthesis = &synthesis
	metrics.RecordSynthesis(metrics.SynthesisCompleted)

	return conv, nil
}

// roleTurn issues one completion for one role's contribution. The role's
// own prompt template is the system message; the turn prompt embeds the
// transcript accumulated so far.
func (o *Orchestrator) roleTurn(ctx context.Context, r *role.Role, userPrompt string, prior []Turn, debateMode bool) (string, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Orchestrator.roleTurn")
	defer span.End()

	observability.AddSpanAttributes(ctx,
		attribute.String("dialogue.role", r.Name),
		attribute.Int("dialogue.turn", len(prior)+1),
	)

	prompt := turnPrompt(r, userPrompt, TranscriptContext(prior), debateMode, len(prior) == 0)

	params := turnParams
	params.Model = r.ModelName

	raw, err := o.gateway.Complete(ctx, []Message{
		{Role: MessageRoleSystem, Content: r.PromptTemplate},
		{Role: MessageRoleUser, Content: prompt},
	}, params)
	if err != nil {
		observability.RecordError(ctx, err)
		return "", err
	}
	return raw, nil
}

// streamedRoleTurn is roleTurn over the gateway's streaming variant; chunks
// are accumulated in emission order into the full turn text. A mid-stream
// failure discards any partial text so a turn is never silently truncated.
func (o *Orchestrator) streamedRoleTurn(ctx context.Context, r *role.Role, userPrompt string, prior []Turn, debateMode bool) (string, error) {
	prompt := turnPrompt(r, userPrompt, TranscriptContext(prior), debateMode, len(prior) == 0)

	params := turnParams
	params.Model = r.ModelName

	chunks, errs := o.gateway.CompleteStream(ctx, []Message{
		{Role: MessageRoleSystem, Content: r.PromptTemplate},
		{Role: MessageRoleUser, Content: prompt},
	}, params)

	var sb strings.Builder
	for chunk := range chunks {
		sb.WriteString(chunk)
	}
	if err := <-errs; err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (o *Orchestrator) synthesize(ctx context.Context, userPrompt string, turns []Turn) (string, error) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Orchestrator.synthesize")
	defer span.End()

	observability.AddSpanAttributes(ctx,
		attribute.Int("dialogue.turns", len(turns)),
	)

	return o.gateway.Complete(ctx, []Message{
		{Role: MessageRoleSystem, Content: synthesisSystemPrompt},
		{Role: MessageRoleUser, Content: synthesisPrompt(userPrompt, TranscriptContext(turns))},
	}, synthesisParams)
}

// StreamFullDialogue runs the same turn generation as FullDialogue but
// emits each step as an event the moment it happens. The returned channel
// is closed after the terminal complete event; failures inside the run are
// converted to error events and never abort the stream.
func (o *Orchestrator) StreamFullDialogue(ctx context.Context, userPrompt string, debateMode bool) <-chan Event {
	events := make(chan Event, 8)
	go func() {
		defer close(events)
		o.runStream(ctx, userPrompt, debateMode, events)
	}()
	return events
}

func (o *Orchestrator) runStream(ctx context.Context, userPrompt string, debateMode bool, events chan<- Event) {
	ctx, span := observability.StartSpan(ctx, tracerName, "Orchestrator.StreamFullDialogue")
	defer span.End()

	observability.AddSpanAttributes(ctx,
		attribute.Bool("dialogue.debate", debateMode),
	)

	metrics.IncrementActiveStreams()
	defer metrics.DecrementActiveStreams()

	if !emit(ctx, events, Event{Type: EventStart, Data: StartData{Prompt: userPrompt}}) {
		return
	}

	participants, err := o.roles.List(ctx, nil)
	if err != nil {
		emit(ctx, events, Event{Type: EventError, Data: ErrorData{Error: "failed to load roles"}})
		emit(ctx, events, Event{Type: EventComplete, Data: nil})
		return
	}

	conv := &Conversation{OriginalPrompt: userPrompt}

	for i, r := range participants {
		// Checked between turns only; an in-flight completion is left to
		// the gateway's own context handling.
		if ctx.Err() != nil {
			return
		}

		if !emit(ctx, events, Event{Type: EventThinking, Data: ThinkingData{Turn: i + 1, Role: r.Name}}) {
			return
		}

		raw, err := o.streamedRoleTurn(ctx, r, userPrompt, conv.Turns, debateMode)
		if err != nil {
			o.logSkippedTurn(ctx, r.Name, i+1, err)
			if !emit(ctx, events, Event{Type: EventError, Data: ErrorData{Turn: i + 1, Role: r.Name, Error: "completion failed"}}) {
				return
			}
			continue
		}

		turn := conv.appendTurn(i+1, r.Name, raw)
		metrics.RecordDialogueTurn(metrics.TurnGenerated)
		if !emit(ctx, events, Event{Type: EventResponse, Data: turn}) {
			return
		}
	}

	if len(conv.Turns) > 0 {
		synthTurn := len(participants) + 1
		if !emit(ctx, events, Event{Type: EventThinking, Data: ThinkingData{Turn: synthTurn, Role: SpeakerSynthesis}}) {
			return
		}

		synthesis, err := o.synthesize(ctx, userPrompt, conv.Turns)
		if err != nil {
			metrics.RecordSynthesis(metrics.SynthesisFailed)
			log := logger.GetLogger()
			log.Error().Err(err).Msg("streamed synthesis failed")
			if !emit(ctx, events, Event{Type: EventError, Data: ErrorData{Turn: synthTurn, Role: SpeakerSynthesis, Error: "synthesis failed"}}) {
				return
			}
		} else {
			metrics.RecordSynthesis(metrics.SynthesisCompleted)
			turn := conv.appendTurn(synthTurn, SpeakerSynthesis, synthesis)
			if !emit(ctx, events, Event{Type: EventSynthesis, Data: turn}) {
				return
			}
		}
	}

	emit(ctx, events, Event{Type: EventComplete, Data: nil})
}

func (o *Orchestrator) logSkippedTurn(ctx context.Context, roleName string, turn int, err error) {
	observability.AddSpanEvent(ctx, "role_turn_skipped",
		attribute.String("dialogue.role", roleName),
		attribute.Int("dialogue.turn", turn),
	)
	metrics.RecordDialogueTurn(metrics.TurnSkipped)
	log := logger.GetLogger()
	log.Warn().
		Err(err).
		Str("role", roleName).
		Int("turn", turn).
		Msg("skipping role turn after completion failure")
}

func emit(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

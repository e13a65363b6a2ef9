package dialogue

import (
	"context"
	"encoding/json"

	"colloquy/dialogue-api/internal/domain/role"
	"colloquy/dialogue-api/internal/infrastructure/metrics"
	"colloquy/dialogue-api/internal/utils/platformerrors"
)

// Decision is the resolver's verdict for one single-role ask.
type Decision struct {
	ShouldCollaborate  bool    `json:"should_collaborate"`
	ChosenCollaborator *string `json:"chosen_collaborator"`
	Reasoning          string  `json:"reasoning"`
}

// Resolver decides, via one completion call, whether a role should answer
// together with one of its listed collaborators. It has no side effects
// beyond that single call.
type Resolver struct {
	gateway CompletionGateway
}

// NewResolver creates a collaboration resolver over the given gateway.
func NewResolver(gateway CompletionGateway) *Resolver {
	return &Resolver{gateway: gateway}
}

// Generation parameters for the decision call. Low temperature keeps the
// JSON verdict stable.
var decisionParams = Params{
	Temperature: 0.2,
	MaxTokens:   300,
	TopP:        1.0,
}

// Decide issues exactly one completion call enumerating the candidates and
// strictly decodes the verdict. A response that does not decode is a
// malformed-decision error: it is not retried and never silently defaulted
// to a non-collaboration verdict, because that would mask backend output
// bugs.
func (r *Resolver) Decide(ctx context.Context, subject *role.Role, userPrompt string, candidates []*role.Role) (*Decision, error) {
	prompt := collaborationPrompt(subject, userPrompt, candidates)

	params := decisionParams
	params.Model = subject.ModelName

	raw, err := r.gateway.Complete(ctx, []Message{
		{Role: MessageRoleUser, Content: prompt},
	}, params)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "collaboration decision call failed")
	}

	var decision Decision
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &decision); err != nil {
		metrics.RecordCollaborationDecision(metrics.DecisionMalformed)
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeMalformedDecision, "collaboration decision is not valid JSON", err, "9d4f2b61-7e8a-4c30-a5b2-6f1d8e0c3a42")
	}

	if decision.ShouldCollaborate {
		metrics.RecordCollaborationDecision(metrics.DecisionCollaborate)
	} else {
		metrics.RecordCollaborationDecision(metrics.DecisionSolo)
	}

	return &decision, nil
}

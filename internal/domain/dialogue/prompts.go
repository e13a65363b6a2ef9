package dialogue

import (
	"fmt"
	"strings"

	"colloquy/dialogue-api/internal/domain/role"
)

const synthesisSystemPrompt = "You are synthesizing a philosophical dialogue."

func collaborationPrompt(r *role.Role, userPrompt string, candidates []*role.Role) string {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		lines = append(lines, fmt.Sprintf("- %s: %s (Triggers: %s)", c.Name, c.Description, c.CollaborationTriggers))
	}

	return fmt.Sprintf(`You are %s.
User question: %q
You have access to the following potential collaborators:
%s

Decide whether answering this question would genuinely benefit from one collaborator's perspective. Collaborate only when the question clearly touches a collaborator's triggers; otherwise answer alone.

Respond with only a JSON object, no other text:
{"should_collaborate": true or false, "chosen_collaborator": "exact collaborator name" or null, "reasoning": "one sentence explaining the decision"}`,
		r.Name, userPrompt, strings.Join(lines, "\n"))
}

func dualPersonaSystemPrompt(primary, collaborator *role.Role, reasoning string) string {
	return fmt.Sprintf(`You are hosting a dialogue between %[1]s and %[2]s.

Primary Perspective (%[1]s): %[3]s
Collaborative Perspective (%[2]s): %[4]s

Reason for collaboration: %[5]s

Please structure your response as a JSON array of role-response pairs. Format as:
[
    {"role": %[6]q, "response": "Initial perspective on the question"},
    {"role": %[7]q, "response": "Response with unique perspective"},
    {"role": %[6]q, "response": "Building on the collaborator's insight"},
    {"role": %[7]q, "response": "Final insights"},
    {"role": "Synthesis", "response": "Brief conclusion drawing from both perspectives"}
]`,
		primary.Name, collaborator.Name, primary.Description, collaborator.Description, reasoning, primary.Name, collaborator.Name)
}

func singlePersonaSystemPrompt(r *role.Role) string {
	return fmt.Sprintf(`You are %[1]s.

%[2]s

Please structure your response as a JSON array with a single role-response pair:
[
    {"role": %[1]q, "response": "Your complete response here"}
]`,
		r.Name, r.PromptTemplate)
}

func turnPrompt(r *role.Role, userPrompt, transcript string, debateMode, firstSpeaker bool) string {
	var engagement string
	switch {
	case firstSpeaker:
		engagement = `1. You are the first to respond, so simply introduce and state your own position
2. Ground your position in your distinct way of seeing the question
3. Keep your response focused and under 150 words`
	case debateMode:
		engagement = `1. Directly reference at least one previous perspective
2. Challenge or counter-argue where your view genuinely diverges, stating the discrepancy clearly
3. Defend your own position against objections the prior speakers raise or imply
4. Add your unique viewpoint as ` + r.Name + `
5. Keep your response focused and under 150 words`
	default:
		engagement = `1. Acknowledge and directly reference at least one previous perspective
2. If your perspective is different from the previous ones, clearly state the discrepancy
3. Either build upon, contrast with, or synthesize the ideas presented
4. Add your unique viewpoint as ` + r.Name + `
5. Keep your response focused and under 150 words`
	}

	return fmt.Sprintf(`You are %s: %s

Previous perspectives on %q:
%s

Your task is to:
%s

Question: %s

Please provide your perspective while explicitly engaging with the previous responses.`,
		r.Name, r.Description, userPrompt, transcript, engagement, userPrompt)
}

func synthesisPrompt(userPrompt, transcript string) string {
	return fmt.Sprintf(`You are tasked with synthesizing this multi-perspective dialogue about: %q

Complete dialogue:
%s

Please provide:
1. Key insights from each perspective
2. Main points of agreement and disagreement
3. A final synthesis that weaves these viewpoints together

Keep your response concise and under 250 words.`,
		userPrompt, transcript)
}

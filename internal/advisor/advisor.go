// Package advisor runs the conversational insurance advisor on top of the
// recommendation engine. The model drives the interview; the engine tools do
// every calculation so quoted premiums and scores are never hallucinated.
package advisor

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/refdata"
	"github.com/sells-group/insurance-advisor/internal/resilience"
	"github.com/sells-group/insurance-advisor/internal/scorer"
	"github.com/sells-group/insurance-advisor/pkg/anthropic"
)

// maxToolRounds bounds the tool loop for a single chat turn. A well-behaved
// conversation needs at most a handful of calls per turn.
const maxToolRounds = 8

// ChatMessage is one turn of conversation history as the frontend sends it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the reply for one chat turn. Recommendations and Analysis
// are only set when the plan tool ran during the turn.
type ChatResponse struct {
	Response        string                 `json:"response"`
	Recommendations []model.Recommendation `json:"recommendations"`
	Analysis        *model.Analysis        `json:"analysis"`
}

// Advisor orchestrates chat turns between the model and the engine tools.
type Advisor struct {
	client    anthropic.Client
	ranker    *scorer.Ranker
	system    []anthropic.SystemBlock
	model     string
	maxTokens int64
}

// New builds an Advisor. The eligibility rules from the snapshot are baked
// into the system prompt, which is sent with a cache breakpoint since it is
// identical on every turn.
func New(client anthropic.Client, snap *refdata.Snapshot, ranker *scorer.Ranker, modelID string, maxTokens int64) *Advisor {
	return &Advisor{
		client:    client,
		ranker:    ranker,
		system:    anthropic.BuildCachedSystemBlocks(fmt.Sprintf(systemPrompt, snap.EligibilityContext())),
		model:     modelID,
		maxTokens: maxTokens,
	}
}

// Chat runs one turn of conversation. The full history is replayed each call;
// the advisor keeps no per-session state.
func (a *Advisor) Chat(ctx context.Context, history []ChatMessage) (*ChatResponse, error) {
	if len(history) == 0 {
		return nil, eris.New("advisor: no messages provided")
	}

	msgs := make([]anthropic.Message, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		msgs = append(msgs, anthropic.Message{
			Role:   role,
			Blocks: []anthropic.ContentBlock{{Type: "text", Text: m.Content}},
		})
	}

	// The first plan result of the turn is attached to the response, so the
	// frontend can render cards alongside the model's prose.
	var advice *model.Advice

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("anthropic", "create_message")

	for round := 0; round < maxToolRounds; round++ {
		resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
			return a.client.CreateMessage(ctx, anthropic.MessageRequest{
				Model:     a.model,
				MaxTokens: a.maxTokens,
				System:    a.system,
				Messages:  msgs,
				Tools:     toolDefinitions(),
			})
		})
		if err != nil {
			return nil, eris.Wrap(err, "advisor: chat turn")
		}
		resp.Usage.LogCost(a.model, "chat")

		uses := resp.ToolUses()
		if len(uses) == 0 {
			out := &ChatResponse{Response: resp.Text()}
			if advice != nil {
				out.Recommendations = advice.Recommendations
				out.Analysis = &advice.Analysis
			}
			return out, nil
		}

		// All results for the turn go back in one user message.
		msgs = append(msgs, anthropic.Message{Role: "assistant", Blocks: resp.Content})
		results := anthropic.Message{Role: "user"}
		for _, use := range uses {
			zap.L().Info("tool call",
				zap.String("tool", use.Name),
				zap.String("id", use.ID),
			)
			payload, planResult, err := a.runTool(use.Name, use.Input)
			if err != nil {
				zap.L().Warn("tool call failed",
					zap.String("tool", use.Name),
					zap.Error(err),
				)
				results.Blocks = append(results.Blocks, anthropic.ContentBlock{
					Type:      "tool_result",
					ToolUseID: use.ID,
					Content:   errorPayload(err),
					IsError:   true,
				})
				continue
			}
			if planResult != nil && advice == nil {
				advice = planResult
			}
			results.Blocks = append(results.Blocks, anthropic.ContentBlock{
				Type:      "tool_result",
				ToolUseID: use.ID,
				Content:   payload,
			})
		}
		msgs = append(msgs, results)
	}

	return nil, eris.Errorf("advisor: tool loop exceeded %d rounds", maxToolRounds)
}

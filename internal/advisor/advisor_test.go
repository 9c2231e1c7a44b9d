package advisor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/refdata"
	"github.com/sells-group/insurance-advisor/internal/scorer"
	"github.com/sells-group/insurance-advisor/pkg/anthropic"
)

// scriptedClient returns canned responses in order and records each request.
type scriptedClient struct {
	responses []*anthropic.MessageResponse
	requests  []anthropic.MessageRequest
}

func (c *scriptedClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	c.requests = append(c.requests, req)
	if len(c.requests) > len(c.responses) {
		panic("scriptedClient: out of responses")
	}
	return c.responses[len(c.requests)-1], nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		StopReason: "end_turn",
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
	}
}

func toolUseResponse(id, name, input string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		StopReason: "tool_use",
		Content: []anthropic.ContentBlock{
			{Type: "tool_use", ID: id, Name: name, Input: json.RawMessage(input)},
		},
	}
}

func testSnapshot() *refdata.Snapshot {
	return &refdata.Snapshot{
		Insurers: []model.InsurerStat{
			{Name: "Secure Life", CSR: 98, Solvency: 1.9},
		},
		Products: []model.Product{
			{
				Metadata: model.ProductMetadata{
					InsurerName:     "Secure Life Insurance",
					ProductName:     "Secure Term",
					BrochureType:    "Term Insurance",
					ProductCategory: "Pure Risk",
				},
				Features:    model.Features{},
				Eligibility: model.Eligibility{MinAge: 18, MaxAge: 65},
			},
		},
	}
}

func newTestAdvisor(client anthropic.Client) *Advisor {
	snap := testSnapshot()
	return New(client, snap, scorer.NewRanker(snap, scorer.DefaultConfig()), "claude-sonnet-4-5-20250929", 1024)
}

func TestChat_NoMessages(t *testing.T) {
	a := newTestAdvisor(&scriptedClient{})
	_, err := a.Chat(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no messages")
}

func TestChat_PlainText(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		textResponse("Hello! 👋 May I have your name?"),
	}}
	a := newTestAdvisor(client)

	resp, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Hello! 👋 May I have your name?", resp.Response)
	assert.Nil(t, resp.Recommendations)
	assert.Nil(t, resp.Analysis)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Len(t, req.Tools, 2)
	require.Len(t, req.System, 1)
	assert.Contains(t, req.System[0].Text, "InsureBot")
}

func TestChat_HistoryRoles(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		textResponse("Noted."),
	}}
	a := newTestAdvisor(client)

	_, err := a.Chat(context.Background(), []ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
		{Role: "user", Content: "my income is 20 lakh"},
	})
	require.NoError(t, err)

	msgs := client.requests[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "user", msgs[2].Role)
}

func TestChat_CoverTool(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		toolUseResponse("toolu_01", toolRecommendedCover,
			`{"income":2000000,"age_override":35}`),
		textResponse("Your recommended cover is **₹5 Crore** 🛡️."),
	}}
	a := newTestAdvisor(client)

	resp, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "I earn 20 lakh, age 35"}})
	require.NoError(t, err)
	assert.Equal(t, "Your recommended cover is **₹5 Crore** 🛡️.", resp.Response)
	assert.Nil(t, resp.Recommendations)

	// Second request carries the assistant tool_use turn plus the result.
	require.Len(t, client.requests, 2)
	msgs := client.requests[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].Role)
	require.Len(t, msgs[2].Blocks, 1)
	result := msgs[2].Blocks[0]
	assert.Equal(t, "tool_result", result.Type)
	assert.Equal(t, "toolu_01", result.ToolUseID)
	assert.False(t, result.IsError)
	// 25x band: 2,000,000 * 25 = 50,000,000.
	assert.JSONEq(t, `{"recommended_cover":50000000,"calculated_age":35}`, result.Content)
}

func TestChat_CoverTool_NoAge(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		toolUseResponse("toolu_01", toolRecommendedCover, `{"income":2000000}`),
		textResponse("Could you share your date of birth? 🗓️"),
	}}
	a := newTestAdvisor(client)

	_, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "I earn 20 lakh"}})
	require.NoError(t, err)

	result := client.requests[1].Messages[2].Blocks[0]
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "could not determine age")
}

func TestChat_PlanTool(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		toolUseResponse("toolu_02", toolInsurancePlan,
			`{"age":35,"income":2000000,"smoker":false,"gender":"Male"}`),
		textResponse("🌟 **Top Recommendation: Secure Term**"),
	}}
	a := newTestAdvisor(client)

	resp, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "Male, non-smoker"}})
	require.NoError(t, err)
	assert.Equal(t, "🌟 **Top Recommendation: Secure Term**", resp.Response)

	require.NotNil(t, resp.Analysis)
	assert.Equal(t, 50_000_000.0, resp.Analysis.RecommendedCover)
	require.Len(t, resp.Recommendations, 1)
	rec := resp.Recommendations[0]
	assert.Equal(t, "Secure Life", rec.Company)
	assert.Equal(t, "Secure Term", rec.ProductName)
	assert.Equal(t, 75000, rec.PremiumEstimate)

	// The tool result fed back to the model is the same advice payload.
	result := client.requests[1].Messages[2].Blocks[0]
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content, `"recommendations"`)
}

func TestChat_UnknownTool(t *testing.T) {
	client := &scriptedClient{responses: []*anthropic.MessageResponse{
		toolUseResponse("toolu_03", "fetch_stock_price", `{}`),
		textResponse("Sorry, I cannot do that."),
	}}
	a := newTestAdvisor(client)

	_, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "price of HDFC stock?"}})
	require.NoError(t, err)

	result := client.requests[1].Messages[2].Blocks[0]
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "unknown tool")
}

func TestChat_ToolLoopBounded(t *testing.T) {
	responses := make([]*anthropic.MessageResponse, maxToolRounds)
	for i := range responses {
		responses[i] = toolUseResponse("toolu_loop", toolRecommendedCover,
			`{"income":1000000,"age_override":30}`)
	}
	a := newTestAdvisor(&scriptedClient{responses: responses})

	_, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "loop"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool loop exceeded")
}

func TestSystemPrompt_EmbedsEligibility(t *testing.T) {
	snap := testSnapshot()
	snap.Eligibility = []model.EligibilityRule{
		{Category: "Medical", Condition: "Recent cardiac surgery", Impact: "Not eligible"},
	}

	client := &scriptedClient{responses: []*anthropic.MessageResponse{textResponse("ok")}}
	a := New(client, snap, scorer.NewRanker(snap, scorer.DefaultConfig()), "claude-sonnet-4-5-20250929", 1024)

	_, err := a.Chat(context.Background(), []ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Contains(t, client.requests[0].System[0].Text, "Recent cardiac surgery")
}

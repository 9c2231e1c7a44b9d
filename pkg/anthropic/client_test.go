package anthropic

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClient implements Client for testing.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MessageResponse), args.Error(1)
}

func TestCreateMessage_MockClient(t *testing.T) {
	mc := new(MockClient)
	ctx := context.Background()

	req := MessageRequest{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 1024,
		Messages:  []Message{UserText("Hello")},
	}

	expected := &MessageResponse{
		ID:         "msg_123",
		Model:      "claude-sonnet-4-5-20250929",
		Content:    []ContentBlock{{Type: "text", Text: "Hi there!"}},
		StopReason: "end_turn",
		Usage: TokenUsage{
			InputTokens:  10,
			OutputTokens: 5,
		},
	}

	mc.On("CreateMessage", ctx, req).Return(expected, nil)

	resp, err := mc.CreateMessage(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, expected, resp)
	mc.AssertExpectations(t)
}

func TestUserText(t *testing.T) {
	msg := UserText("hello")
	assert.Equal(t, "user", msg.Role)
	require.Len(t, msg.Blocks, 1)
	assert.Equal(t, "text", msg.Blocks[0].Type)
	assert.Equal(t, "hello", msg.Blocks[0].Text)
}

func TestToolResultMessage(t *testing.T) {
	msg := ToolResultMessage("toolu_01", `{"ok":true}`, false)
	assert.Equal(t, "user", msg.Role)
	require.Len(t, msg.Blocks, 1)
	assert.Equal(t, "tool_result", msg.Blocks[0].Type)
	assert.Equal(t, "toolu_01", msg.Blocks[0].ToolUseID)
	assert.Equal(t, `{"ok":true}`, msg.Blocks[0].Content)
	assert.False(t, msg.Blocks[0].IsError)
}

func TestMessageResponse_Text(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "part one "},
			{Type: "tool_use", ID: "toolu_01", Name: "lookup"},
			{Type: "text", Text: "part two"},
		},
	}
	assert.Equal(t, "part one part two", resp.Text())
}

func TestMessageResponse_ToolUses(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			{Type: "text", Text: "thinking"},
			{Type: "tool_use", ID: "toolu_01", Name: "lookup", Input: json.RawMessage(`{"q":1}`)},
			{Type: "tool_use", ID: "toolu_02", Name: "calc", Input: json.RawMessage(`{}`)},
		},
	}

	uses := resp.ToolUses()
	require.Len(t, uses, 2)
	assert.Equal(t, "toolu_01", uses[0].ID)
	assert.Equal(t, "lookup", uses[0].Name)
	assert.Equal(t, "toolu_02", uses[1].ID)

	empty := &MessageResponse{Content: []ContentBlock{{Type: "text", Text: "done"}}}
	assert.Empty(t, empty.ToolUses())
}

func TestEstimateCost(t *testing.T) {
	usage := TokenUsage{
		InputTokens:  1_000_000,
		OutputTokens: 1_000_000,
	}

	// sonnet: $3 in + $15 out per MTok
	assert.InDelta(t, 18.0, usage.EstimateCost("claude-sonnet-4-5-20250929"), 1e-9)
	assert.Zero(t, usage.EstimateCost("unknown-model"))
}

func TestEstimateCost_CacheTokens(t *testing.T) {
	usage := TokenUsage{
		CacheCreationInputTokens: 1_000_000,
		CacheReadInputTokens:     1_000_000,
	}

	// cache write is 1.25x input price, cache read 0.1x
	assert.InDelta(t, 3.0*1.25+3.0*0.1, usage.EstimateCost("claude-sonnet-4-5-20250929"), 1e-9)
}

func TestBuildCachedSystemBlocks(t *testing.T) {
	blocks := BuildCachedSystemBlocks("system prompt")
	require.Len(t, blocks, 1)
	assert.Equal(t, "system prompt", blocks[0].Text)
	require.NotNil(t, blocks[0].CacheControl)
	assert.Equal(t, "5m", blocks[0].CacheControl.TTL)
}

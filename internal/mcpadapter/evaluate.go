package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/genieai/rag-eval-agent/internal/models"
	"github.com/genieai/rag-eval-agent/internal/runner"
)

// EvaluateTurnInput is the MCP tool input schema (matches HTTP API field names).
type EvaluateTurnInput struct {
	ChatID    string `json:"chat_id" jsonschema:"conversation identifier"`
	MessageID string `json:"message_id" jsonschema:"identifier of the user message in the conversation"`
	GuestMode bool   `json:"guest_mode,omitempty" jsonschema:"look the turn up in the guest history instead of the registered-user history"`
}

// NewEvaluateTurnHandler returns a tool handler that re-scores one stored
// conversation turn. Pass the returned function to mcp.AddTool.
func NewEvaluateTurnHandler(controller *runner.Controller) func(context.Context, *mcp.CallToolRequest, EvaluateTurnInput) (*mcp.CallToolResult, models.EvaluationRecord, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input EvaluateTurnInput) (*mcp.CallToolResult, models.EvaluationRecord, error) {
		return EvaluateTurn(ctx, controller, req, input)
	}
}

// EvaluateTurn runs the evaluate-and-persist path for a single turn and
// returns the stored record.
func EvaluateTurn(
	ctx context.Context,
	controller *runner.Controller,
	req *mcp.CallToolRequest,
	input EvaluateTurnInput,
) (*mcp.CallToolResult, models.EvaluationRecord, error) {
	record, err := controller.ReEvaluate(ctx, models.TurnKey{
		ChatID:    input.ChatID,
		MessageID: input.MessageID,
		GuestMode: input.GuestMode,
	})
	return nil, record, err
}

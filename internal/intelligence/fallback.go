package intelligence

import (
	"context"
	"encoding/json"

	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// fallbackUnreachable is the degraded reply when no matcher fired and the
// LLM bridge is disabled or failing.
const fallbackUnreachable = "I'm sorry, I can't reach the assistant service right now. Please try again later."

// maxToolRounds caps tool execution at one round trip per turn: one tool
// call, one result, one follow-up completion.
const maxToolRounds = 1

func empIDParam() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"emp_id": map[string]any{"type": "string", "description": "Employee ID"},
		},
		"required": []string{"emp_id"},
	}
}

// fallbackTools is the tool schema offered to the model on every fallback
// turn. Summaries are deliberately absent; they are already embedded in
// the system prompt.
var fallbackTools = []llm.Tool{
	{Type: "function", Function: llm.ToolFunction{
		Name:        "get_employee_details",
		Description: "Fetch ERP employee details using employee ID",
		Parameters:  empIDParam(),
	}},
	{Type: "function", Function: llm.ToolFunction{
		Name:        "get_leave_types",
		Description: "Fetch all leave types available for an employee",
		Parameters:  empIDParam(),
	}},
	{Type: "function", Function: llm.ToolFunction{
		Name:        "get_leave_applications",
		Description: "Fetch all leave applications for a given employee (excluding status 0 and 6)",
		Parameters:  empIDParam(),
	}},
}

// fallback hands the turn to the model with the full transcript and the
// tool schema. A requested tool is executed against the ERP gateway and
// its JSON result fed back for one follow-up completion.
func (e *Engine) fallback(ctx context.Context, st *session.State) string {
	if e.client == nil {
		return fallbackUnreachable
	}

	resp, err := e.client.Chat(ctx, llm.ChatRequest{Messages: st.Transcript, Tools: fallbackTools})
	if err != nil {
		return fallbackUnreachable
	}

	for round := 0; round < maxToolRounds && resp.ToolCall != nil; round++ {
		result := e.executeTool(ctx, st, *resp.ToolCall)
		st.AppendFunctionResult(resp.ToolCall.Name, result)

		resp, err = e.client.Chat(ctx, llm.ChatRequest{Messages: st.Transcript, Tools: fallbackTools})
		if err != nil {
			return fallbackUnreachable
		}
	}

	return resp.Content
}

// executeTool runs one model-requested tool against the ERP gateway and
// returns the JSON to feed back. Failures become JSON error objects, not
// turn failures.
func (e *Engine) executeTool(ctx context.Context, st *session.State, call llm.ToolCall) string {
	empID := call.StringArg("emp_id")
	if empID == "" {
		empID = st.EmpID
	}

	var payload any
	var err error
	switch call.Name {
	case "get_employee_details":
		payload, err = e.gateway.GetEmployeeDetails(ctx, empID)
	case "get_leave_types":
		payload, err = e.gateway.GetLeaveTypes(ctx, empID)
	case "get_leave_applications":
		payload, err = e.gateway.GetLeaveApplications(ctx, empID)
	default:
		return `{"error": "Unknown function."}`
	}
	if err != nil {
		out, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(out)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return `{"error": "Could not encode function result."}`
	}
	return string(out)
}

package intelligence_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohshaan/Leave-botanv/internal/intelligence"
	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/session"
	"github.com/ohshaan/Leave-botanv/internal/testutil"
)

// scriptedClient replays canned responses in order and records every
// request it sees.
type scriptedClient struct {
	responses []*llm.ChatResponse
	err       error
	requests  []llm.ChatRequest
}

func (c *scriptedClient) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return &llm.ChatResponse{}, nil
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptedClient) Available(ctx context.Context) bool { return true }

var fixedNow = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

func newEngine(client llm.Client) *intelligence.Engine {
	return intelligence.NewEngine(client, &testutil.FakeGateway{}, nil).
		WithClock(func() time.Time { return fixedNow })
}

func resolve(t *testing.T, e *intelligence.Engine, st *session.State, utterance string) *intelligence.Result {
	t.Helper()
	return e.Resolve(context.Background(), st, utterance)
}

func TestApplyExplicitTypeSufficientBalance(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "Can I apply for 2 sick leave?")

	assert.Equal(t, "apply_explicit_type", res.Matcher)
	assert.Equal(t, "Yes, you can apply for 2 days of Sick Leave.", res.Text)
	assert.Nil(t, st.Pending)
}

func TestApplyExplicitTypeInsufficientBalance(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "can i apply for 5 annual leave")

	assert.Equal(t, "No, you only have 3 days available for Annual Leave. You cannot apply for 5 days.", res.Text)
}

func TestApplyExplicitTypeUnknownType(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.SetPending(3, "")

	res := resolve(t, e, st, "apply for 2 hajj leave")

	assert.Equal(t, "Could not find a leave type matching 'Hajj'.", res.Text)
	assert.Nil(t, st.Pending, "explicit apply clears the pending slot on every exit")
}

func TestApplyAmbiguousDaysMultipleEligible(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "apply for 4 days leave")

	assert.Equal(t, "apply_ambiguous_days", res.Matcher)
	assert.Equal(t,
		"You are eligible to apply for 4 days under the following leave types: Sick Leave, Casual Leave.\nPlease specify which leave type you want.",
		res.Text)
	require.NotNil(t, st.Pending)
	assert.Equal(t, 4, st.Pending.NumDays)
}

func TestApplyAmbiguousDaysSingleEligible(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "apply for 5 days leave")

	assert.Equal(t, "Yes, you can apply for 5 days of Casual Leave.", res.Text)
	assert.Nil(t, st.Pending)
}

func TestApplyAmbiguousDaysNoneEligible(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "apply for 20 days leave")

	assert.Equal(t, "You do not have enough balance for any leave type for 20 days.", res.Text)
	assert.Nil(t, st.Pending)
}

func TestClarificationRoundTrip(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	resolve(t, e, st, "apply for 4 days leave")
	require.NotNil(t, st.Pending)

	res := resolve(t, e, st, "for sick leave")

	assert.Equal(t, "apply_clarification", res.Matcher)
	assert.Equal(t, "Yes, you can apply for 4 days of Sick Leave.", res.Text)
	assert.Nil(t, st.Pending)
}

func TestClarificationUnknownTypeKeepsPending(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.SetPending(4, "")

	res := resolve(t, e, st, "for hajj leave")

	assert.Equal(t, "Could not find a leave type matching 'Hajj'.", res.Text)
	assert.NotNil(t, st.Pending, "unresolved clarification leaves the slot set for another try")
}

func TestClarificationRequiresPending(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "what was my last leave")

	assert.NotEqual(t, "apply_clarification", res.Matcher)
}

func TestTypeBalanceLeftWinsOverFuzzyTable(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "how many sick leave left")

	assert.Equal(t, "type_balance_left", res.Matcher)
	assert.Equal(t, "You have 4 days of Sick Leave remaining.", res.Text)
}

func TestBalanceCheckLatestUsesLastListElement(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "do i have enough balance to get approved")

	assert.Equal(t, "balance_check_latest", res.Matcher)
	assert.Equal(t,
		"Yes, you have enough balance to get approval for your latest leave application.\n\n- Leave Type: Casual Leave\n- Days Requested: 1\n- Your Current Balance: 10",
		res.Text)
}

func TestBalanceCheckLatestEmptyHistory(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.History = nil

	res := resolve(t, e, st, "do i have enough balance to get approved")

	assert.Equal(t, "No leave applications found to check balance.", res.Text)
}

func TestBalanceCheckByReference(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "is there enough balance for ref 123")

	assert.Equal(t, "balance_check_reference", res.Matcher)
	assert.Equal(t,
		"Yes, you have enough balance to get approval for this application.\n\n- Leave Type: Sick Leave\n- Days Requested: 3\n- Your Current Balance: 4",
		res.Text)
}

func TestBalanceCheckByReferenceNotFound(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "do i have enough balance for ref 999")

	assert.Equal(t, "Could not find leave application with reference 999.", res.Text)
}

func TestDraftApprovalLetterDefaultsToLastElement(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "draft a letter requesting to approve my leave")

	assert.Equal(t, "draft_approval_letter", res.Matcher)
	assert.Contains(t, res.Text, "Subject: Request for Approval of Leave Application (Ref: LP00145)")
	assert.Contains(t, res.Text, "Dear Sam Carter,")
	assert.Contains(t, res.Text, "- Leave Type: Casual Leave")
	assert.Contains(t, res.Text, "- Requested Dates: 2025-04-01 to 2025-04-01")
	assert.Contains(t, res.Text, "Date: 2025-07-15")
}

func TestDraftApprovalLetterByReference(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "draft a letter for lp 120")

	assert.Contains(t, res.Text, "(Ref: LP00120)")
	assert.Contains(t, res.Text, "- Leave Type: Annual Leave")
}

func TestCancelLatestApprovedIsEditable(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "can i cancel my leave")

	assert.Equal(t, "cancel_reschedule", res.Matcher)
	assert.Contains(t, res.Text, "Yes, you can cancel or reschedule your approved leave (Ref LP00120: Annual Leave, 2025-06-02 to 2025-06-06).")
}

func TestCancelLockedReference(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "can i cancel my leave ref 123")

	assert.Contains(t, res.Text, "No, you cannot cancel or reschedule your leave (Ref LP00123X: Sick Leave, 2025-03-10 to 2025-03-12) because it is locked for editing.")
}

func TestCancelNoApprovedLeave(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.History = st.History[2:3] // Pending only

	res := resolve(t, e, st, "can i cancel my leave")

	assert.Equal(t, "No approved leave application found to cancel or reschedule.", res.Text)
}

func TestResolveAppendsTranscript(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	before := len(st.Transcript)

	res := resolve(t, e, st, "who approves my leaves")

	require.Len(t, st.Transcript, before+2)
	assert.Equal(t, llm.RoleUser, st.Transcript[before].Role)
	assert.Equal(t, "who approves my leaves", st.Transcript[before].Content)
	assert.Equal(t, llm.RoleAssistant, st.Transcript[before+1].Role)
	assert.Equal(t, res.Text, st.Transcript[before+1].Content)
}

func TestDeterministicRepliesAreIdempotent(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	utterances := []string{
		"who approves my leaves",
		"how many sick leave left",
		"what was my last leave",
		"show me my leave balance",
	}
	for _, u := range utterances {
		first := resolve(t, e, st, u)
		second := resolve(t, e, st, u)
		assert.Equal(t, first.Text, second.Text, "utterance %q", u)
		assert.Equal(t, first.Matcher, second.Matcher, "utterance %q", u)
	}
}

func TestProcedureSpecificTypeDegradesWithoutClient(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "how do i apply for sick leave")

	assert.Equal(t, "procedure_specific_type", res.Matcher)
	assert.Equal(t, "Sorry, I could not fetch the leave application procedure right now. Please try again later.", res.Text)
}

func TestProcedureSpecificTypeUsesRestrictedPrompt(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{{Content: "Open ESS and submit the sick leave form."}}}
	e := newEngine(client)
	st := testutil.NewState()

	res := resolve(t, e, st, "how do i apply for sick leave")

	assert.Equal(t, "Open ESS and submit the sick leave form.", res.Text)
	require.Len(t, client.requests, 1)
	req := client.requests[0]
	require.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[0].Content, "HELP DOCUMENT:")
	assert.Contains(t, req.Messages[0].Content, st.HelpDoc)
	assert.NotContains(t, req.Messages[0].Content, "Jordan Blake", "procedure prompt carries no employee data")
	assert.Contains(t, req.Messages[1].Content, "procedure for applying for sick leave")
	assert.Empty(t, req.Tools)
}

func TestProcedureGeneralKeyword(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{{Content: "Submit through ESS."}}}
	e := newEngine(client)
	st := testutil.NewState()

	res := resolve(t, e, st, "what is the procedure to apply leave")

	assert.Equal(t, "procedure_general", res.Matcher)
	assert.Equal(t, "Submit through ESS.", res.Text)
	require.Len(t, client.requests, 1)
	assert.Contains(t, client.requests[0].Messages[1].Content, "general procedure for applying leave")
}

func TestFallbackWithoutClient(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "hello there")

	assert.Equal(t, intelligence.FallbackSource, res.Matcher)
	assert.Equal(t, "I'm sorry, I can't reach the assistant service right now. Please try again later.", res.Text)
}

func TestFallbackPlainReply(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{{Content: "Hello! How can I help with your leave today?"}}}
	e := newEngine(client)
	st := testutil.NewState()

	res := resolve(t, e, st, "hello there")

	assert.Equal(t, intelligence.FallbackSource, res.Matcher)
	assert.Equal(t, "Hello! How can I help with your leave today?", res.Text)
	require.Len(t, client.requests, 1)
	assert.Len(t, client.requests[0].Tools, 3)
}

func TestFallbackToolRoundTrip(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		{ToolCall: &llm.ToolCall{Name: "get_leave_types", Arguments: json.RawMessage(`{"emp_id":"E100"}`)}},
		{Content: "You have three leave types."},
	}}
	gateway := &testutil.FakeGateway{Types: testutil.SampleCatalog()}
	e := intelligence.NewEngine(client, gateway, nil).
		WithClock(func() time.Time { return fixedNow })
	st := testutil.NewState()

	res := resolve(t, e, st, "hello there")

	assert.Equal(t, "You have three leave types.", res.Text)
	require.Len(t, client.requests, 2)

	// The second completion sees the function result in the transcript.
	second := client.requests[1].Messages
	fn := second[len(second)-1]
	assert.Equal(t, llm.RoleFunction, fn.Role)
	assert.Equal(t, "get_leave_types", fn.Name)
	assert.Contains(t, fn.Content, "Annual Leave")
}

func TestFallbackUnknownTool(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		{ToolCall: &llm.ToolCall{Name: "get_payslips", Arguments: json.RawMessage(`{}`)}},
		{Content: "I cannot do that."},
	}}
	e := newEngine(client)
	st := testutil.NewState()

	res := resolve(t, e, st, "hello there")

	assert.Equal(t, "I cannot do that.", res.Text)
	second := client.requests[1].Messages
	assert.Equal(t, `{"error": "Unknown function."}`, second[len(second)-1].Content)
}

func TestFallbackSingleToolRound(t *testing.T) {
	client := &scriptedClient{responses: []*llm.ChatResponse{
		{ToolCall: &llm.ToolCall{Name: "get_leave_types", Arguments: json.RawMessage(`{"emp_id":"E100"}`)}},
		{ToolCall: &llm.ToolCall{Name: "get_leave_types", Arguments: json.RawMessage(`{"emp_id":"E100"}`)}},
	}}
	gateway := &testutil.FakeGateway{Types: testutil.SampleCatalog()}
	e := intelligence.NewEngine(client, gateway, nil).
		WithClock(func() time.Time { return fixedNow })
	st := testutil.NewState()

	res := resolve(t, e, st, "hello there")

	// A second tool request is not executed; the turn ends after one round.
	assert.Empty(t, res.Text)
	assert.Len(t, client.requests, 2)
}

// Package intelligence resolves one user utterance to one reply: an
// ordered cascade of deterministic intent matchers with early
// termination, backed by an LLM bridge when no matcher fires.
package intelligence

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ohshaan/Leave-botanv/internal/erp"
	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// FallbackSource names the resolver of record for non-matcher replies.
const FallbackSource = "llm_fallback"

// turn carries one utterance through the cascade.
type turn struct {
	Utterance string
	Lower     string
	State     *session.State
	Now       time.Time
}

// matcherFunc inspects the turn and either produces the final reply text
// (ok true) or defers to the next matcher.
type matcherFunc func(e *Engine, ctx context.Context, t *turn) (string, bool)

type matcher struct {
	name  string
	match matcherFunc
}

// cascade is the fixed priority order. Matchers overlap in the phrases
// they recognize, so this order is a correctness contract: the first
// match wins and nothing below it runs, including the LLM fallback.
var cascade = []matcher{
	{"procedure_specific_type", matchProcedureSpecificType},
	{"procedure_general", matchProcedureGeneral},
	{"apply_explicit_type", matchApplyExplicitType},
	{"apply_clarification", matchApplyClarification},
	{"apply_ambiguous_days", matchApplyAmbiguousDays},
	{"balance_check_latest", matchBalanceCheckLatest},
	{"balance_check_reference", matchBalanceCheckReference},
	{"draft_approval_letter", matchDraftApprovalLetter},
	{"type_balance_left", matchTypeBalanceLeft},
	{"air_ticket", matchAirTicket},
	{"leaves_this_year", matchLeavesThisYear},
	{"leaves_this_month", matchLeavesThisMonth},
	{"who_approves", matchWhoApproves},
	{"all_leaves", matchAllLeaves},
	{"last_approved_leave", matchLastApprovedLeave},
	{"have_leave_type", matchHaveLeaveType},
	{"last_leave", matchLastLeave},
	{"balance_table", matchBalanceTable},
	{"leave_policy", matchLeavePolicy},
	{"contact_manager", matchContactManager},
	{"profile_job_post", matchJobPost},
	{"profile_department", matchDepartment},
	{"profile_manager", matchManager},
	{"profile_shift", matchShift},
	{"profile_visa", matchVisa},
	{"cancel_reschedule", matchCancelReschedule},
}

// Result is one resolved turn. Matcher is the name of the cascade entry
// that produced the reply, or FallbackSource.
type Result struct {
	Text    string
	Matcher string
}

// Engine evaluates the cascade over a session and owns the fallback
// bridge's collaborators.
type Engine struct {
	client   llm.Client // nil when the LLM bridge is disabled
	gateway  erp.Gateway
	observer llm.Observer
	now      func() time.Time
}

// NewEngine creates an Engine. client may be nil, in which case LLM-backed
// paths degrade to fixed replies.
func NewEngine(client llm.Client, gateway erp.Gateway, observer llm.Observer) *Engine {
	if observer == nil {
		observer = llm.NoopObserver{}
	}
	return &Engine{
		client:   client,
		gateway:  gateway,
		observer: observer,
		now:      time.Now,
	}
}

// WithClock overrides the engine's clock. Test hook.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Resolve runs one turn: the utterance is appended to the transcript, the
// cascade is evaluated top to bottom, and the winning reply (or the LLM
// fallback's) is appended and returned. No path here fails the session;
// collaborator errors degrade to fixed replies.
func (e *Engine) Resolve(ctx context.Context, st *session.State, utterance string) *Result {
	st.Append(llm.RoleUser, utterance)

	t := &turn{
		Utterance: utterance,
		Lower:     strings.ToLower(strings.TrimSpace(utterance)),
		State:     st,
		Now:       e.now(),
	}

	for _, m := range cascade {
		if reply, ok := m.match(e, ctx, t); ok {
			st.Append(llm.RoleAssistant, reply)
			return &Result{Text: reply, Matcher: m.name}
		}
	}

	reply := e.fallback(ctx, st)
	st.Append(llm.RoleAssistant, reply)
	return &Result{Text: reply, Matcher: FallbackSource}
}

// fmtDays renders day counts and balances without a trailing ".0".
func fmtDays(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

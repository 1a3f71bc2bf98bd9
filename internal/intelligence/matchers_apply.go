package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

var (
	procedureSpecificRe = regexp.MustCompile(`how (do i|can i|to) apply for (.+?) leave`)
	procedureGeneralRe  = regexp.MustCompile(`how (do i|can i|to) apply for leave`)

	applyExplicitRe      = regexp.MustCompile(`\b(?:can\s+i\s+)?apply\s+for\s+(\d+)\s*(?:day|days)?\s*([a-zA-Z ]+?)\s*leave\b`)
	applyClarificationRe = regexp.MustCompile(`for\s+([a-zA-Z ]+?)\s*leave\b`)
	applyAmbiguousRe     = regexp.MustCompile(`apply\s+for\s+(\d+)\s*(?:day|days)?\s*leave\b`)
)

// procedureKeywords trigger the general procedure path without the exact
// "how to apply" phrasing.
var procedureKeywords = []string{
	"procedure to apply leave",
	"how to apply leave",
	"leave application procedure",
	"apply for leave process",
}

// matchProcedureSpecificType answers "how do I apply for <type> leave"
// through the restricted help-document prompt. The type name is taken
// verbatim from the match, not validated against the catalog.
func matchProcedureSpecificType(e *Engine, ctx context.Context, t *turn) (string, bool) {
	m := procedureSpecificRe.FindStringSubmatch(t.Lower)
	if m == nil {
		return "", false
	}
	return e.askProcedure(ctx, t, strings.TrimSpace(m[2])), true
}

// matchProcedureGeneral answers generic "how to apply for leave" phrasing
// or any of the fixed procedure keywords.
func matchProcedureGeneral(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !procedureGeneralRe.MatchString(t.Lower) && !containsAny(t.Lower, procedureKeywords) {
		return "", false
	}
	return e.askProcedure(ctx, t, ""), true
}

// askProcedure runs the restricted-prompt exchange: help document only,
// no employee data. The synthesized user message and the reply are both
// recorded in the transcript.
func (e *Engine) askProcedure(ctx context.Context, t *turn, leaveType string) string {
	userMsg := procedureUserMsg(leaveType)
	t.State.Append(llm.RoleUser, userMsg)

	if e.client == nil {
		return procedureUnreachable
	}

	resp, err := e.client.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: buildProcedureSystemPrompt(t.State.HelpDoc)},
			{Role: llm.RoleUser, Content: userMsg},
		},
	})
	if err != nil || resp.Content == "" {
		return procedureUnreachable
	}
	return resp.Content
}

// matchApplyExplicitType handles "apply for N [days] <type> leave": the
// named type is resolved against the catalog and N compared to its
// balance. The pending slot is force-cleared on every exit.
func matchApplyExplicitType(e *Engine, ctx context.Context, t *turn) (string, bool) {
	m := applyExplicitRe.FindStringSubmatch(t.Lower)
	if m == nil {
		return "", false
	}
	typeRaw := strings.TrimSpace(m[2])
	if !meaningfulTypeToken(typeRaw) {
		// "apply for 2 days leave" names no type; the ambiguous-days
		// matcher below owns that phrasing.
		return "", false
	}

	numDays, _ := strconv.Atoi(m[1])
	defer t.State.ClearPending()

	lt, ok := ResolveTypeByName(t.State.LeaveTypes, typeRaw)
	if !ok {
		return fmt.Sprintf("Could not find a leave type matching '%s'.", domain.TitleCase(typeRaw)), true
	}
	return balanceVerdict(t.State, lt, numDays), true
}

// matchApplyClarification resumes a pending day-count application once
// the user supplies "for <type> leave". A resolved type consumes and
// clears the pending slot; an unresolvable name leaves it set so the
// user can try another type.
func matchApplyClarification(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if t.State.Pending == nil {
		return "", false
	}
	m := applyClarificationRe.FindStringSubmatch(t.Lower)
	if m == nil {
		return "", false
	}
	typeRaw := strings.TrimSpace(m[1])

	lt, ok := ResolveTypeByName(t.State.LeaveTypes, typeRaw)
	if !ok {
		return fmt.Sprintf("Could not find a leave type matching '%s'.", domain.TitleCase(typeRaw)), true
	}
	numDays := t.State.Pending.NumDays
	t.State.ClearPending()
	return balanceVerdict(t.State, lt, numDays), true
}

// matchApplyAmbiguousDays handles "apply for N days leave" with no type
// named: one eligible type answers directly, several set the pending slot
// and invite disambiguation, none reports insufficient balance.
func matchApplyAmbiguousDays(e *Engine, ctx context.Context, t *turn) (string, bool) {
	m := applyAmbiguousRe.FindStringSubmatch(t.Lower)
	if m == nil {
		return "", false
	}
	numDays, _ := strconv.Atoi(m[1])

	var eligible []string
	var only domain.LeaveType
	for _, lt := range t.State.LeaveTypes {
		if float64(numDays) <= t.State.BalanceFor(lt.LpdID) {
			if len(eligible) == 0 {
				only = lt
			}
			eligible = append(eligible, lt.TitleDesc())
		}
	}

	switch {
	case len(eligible) == 1:
		t.State.ClearPending()
		return balanceVerdict(t.State, only, numDays), true
	case len(eligible) > 1:
		t.State.SetPending(numDays, "")
		return fmt.Sprintf(
			"You are eligible to apply for %d days under the following leave types: %s.\nPlease specify which leave type you want.",
			numDays, strings.Join(eligible, ", ")), true
	default:
		t.State.ClearPending()
		return fmt.Sprintf("You do not have enough balance for any leave type for %d days.", numDays), true
	}
}

// balanceVerdict states yes/no for applying numDays of the given type.
func balanceVerdict(st *session.State, lt domain.LeaveType, numDays int) string {
	balance := st.BalanceFor(lt.LpdID)
	if float64(numDays) <= balance {
		return fmt.Sprintf("Yes, you can apply for %d days of %s.", numDays, lt.TitleDesc())
	}
	return fmt.Sprintf("No, you only have %s days available for %s. You cannot apply for %d days.",
		fmtDays(balance), lt.TitleDesc(), numDays)
}

// meaningfulTypeToken filters out remnants of the optional day-suffix so
// "apply for 2 days leave" does not parse "s" as a leave-type name.
func meaningfulTypeToken(tok string) bool {
	switch strings.TrimSpace(tok) {
	case "", "s", "day", "days":
		return false
	}
	return true
}

package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/history"
)

var leavesThisYearKeywords = []string{
	"how many leaves did i apply",
	"leaves did i apply this year",
	"leaves did i take this year",
	"how many leaves have i taken this year",
	"number of leaves this year",
	"total leaves this year",
}

func matchLeavesThisYear(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, leavesThisYearKeywords, FuzzyThresholdDefault) {
		return "", false
	}
	n := len(history.ByYear(t.State.History, t.Now.Year()))
	return fmt.Sprintf("You have applied for %d leaves this year.", n), true
}

var leavesThisMonthKeywords = []string{
	"did i apply for any leaves this month",
	"leaves this month",
	"did i take leave this month",
	"leave applications this month",
	"leaves in current month",
}

func matchLeavesThisMonth(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, leavesThisMonthKeywords, FuzzyThresholdDefault) {
		return "", false
	}
	recs := history.ByMonth(t.State.History, t.Now.Month(), t.Now.Year())
	return history.FormatDigest(recs), true
}

// allLeavesKeywords is deliberately broad: it also catches follow-up
// phrasings like "what are those" after a count reply.
var allLeavesKeywords = []string{
	"all my leaves",
	"all my leaves i have applied for",
	"all leaves",
	"show me all my leave applications",
	"all my previous leave applications",
	"leave applications",
	"all leave applications",
	"what are those",
	"which are these leaves",
	"what leaves did i take this year",
	"list my leaves",
	"what were my leaves this year",
	"my leaves for this year",
	"leaves for this year",
	"leaves this year",
	"show my leaves this year",
	"which leaves did i take this year",
	"leaves applied this year",
	"my leaves taken this year",
	"which leaves have i taken this year",
}

func matchAllLeaves(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, allLeavesKeywords, FuzzyThresholdLoose) {
		return "", false
	}
	return history.FormatDigest(t.State.History), true
}

var lastApprovedKeywords = []string{
	"last approved leave",
	"most recent approved leave",
	"latest approved leave",
	"previous approved leave",
}

// matchLastApprovedLeave reports the date-max element of the approved
// subset, unlike the balance checkers which use the last list element.
func matchLastApprovedLeave(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, lastApprovedKeywords, FuzzyThresholdDefault) {
		return "", false
	}
	latest, ok := history.Latest(history.Approved(t.State.History))
	if !ok {
		return "No approved leave found in your history.", true
	}
	return fmt.Sprintf("Your last approved leave was Ref %s: %s, from %s to %s (%s day(s)).",
		domain.CoalesceStr(latest.Reference, "N/A"),
		domain.CoalesceStr(latest.TypeDesc, "N/A"),
		latest.FromDateOnly(), latest.ToDateOnly(), latest.TotalDays), true
}

var haveLeaveTypeRe = regexp.MustCompile(`do i have (.+?) leave`)

// matchHaveLeaveType answers "do I have <type> leave" with that type's
// balance; the query must be contained in a catalog description.
func matchHaveLeaveType(e *Engine, ctx context.Context, t *turn) (string, bool) {
	m := haveLeaveTypeRe.FindStringSubmatch(t.Lower)
	if m == nil {
		return "", false
	}
	query := strings.TrimSpace(m[1])

	lt, ok := ResolveTypeContaining(t.State.LeaveTypes, query)
	if !ok {
		return fmt.Sprintf("I could not find information about '%s' leave in your profile.", query), true
	}
	return fmt.Sprintf("You have %s days balance for %s.", rawBalance(t.State, lt.LpdID), lt.Description), true
}

var lastLeaveKeywords = []string{
	"last leave",
	"most recent leave",
	"previous leave",
	"latest leave",
}

func matchLastLeave(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, lastLeaveKeywords, FuzzyThresholdDefault) {
		return "", false
	}
	latest, ok := history.Latest(t.State.History)
	if !ok {
		return "⚠️ Could not fetch your leave history.", true
	}
	return fmt.Sprintf("Your last leave was Ref %s: %s, from %s to %s (%s day(s)) — **%s**",
		domain.CoalesceStr(latest.Reference, "N/A"),
		domain.CoalesceStr(latest.TypeDesc, "N/A"),
		latest.FromDateOnly(), latest.ToDateOnly(), latest.TotalDays,
		domain.CoalesceStr(latest.Status, "N/A")), true
}

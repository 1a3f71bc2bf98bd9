package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/history"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// enoughBalancePhrases gate both balance-check matchers; the presence or
// absence of a reference token is what separates them.
var enoughBalancePhrases = []string{
	"enough leave",
	"enough balance",
	"get approved",
	"sufficient leave",
	"sufficient balance",
}

// refTokenRe extracts the digit run of a reference-number token such as
// "LP00123" or "ref 123".
var refTokenRe = regexp.MustCompile(`(?:lp|ref)[^\d]*(\d{3,})`)

// matchBalanceCheckLatest answers "do I have enough balance" questions
// that carry no reference token. It checks the most recently added
// history record, the last list element rather than the date-max.
func matchBalanceCheckLatest(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, enoughBalancePhrases) || refTokenRe.MatchString(t.Lower) {
		return "", false
	}

	if len(t.State.History) == 0 {
		return "No leave applications found to check balance.", true
	}
	rec := t.State.History[len(t.State.History)-1]

	daysRequested := rec.TotalDays.Float()
	balance := catalogBalanceFor(t.State, rec.TypeDesc)

	switch {
	case balance >= daysRequested && daysRequested > 0:
		return fmt.Sprintf(
			"Yes, you have enough balance to get approval for your latest leave application.\n\n- Leave Type: %s\n- Days Requested: %s\n- Your Current Balance: %s",
			strings.TrimSpace(rec.TypeDesc), fmtDays(daysRequested), fmtDays(balance)), true
	case daysRequested == 0:
		return "Your latest leave application does not specify any days requested.", true
	default:
		return fmt.Sprintf(
			"No, you do not have enough balance to get approval for your latest leave application.\n\n- Leave Type: %s\n- Days Requested: %s\n- Your Current Balance: %s",
			strings.TrimSpace(rec.TypeDesc), fmtDays(daysRequested), fmtDays(balance)), true
	}
}

// matchBalanceCheckReference is the same check keyed by an explicit
// reference token, resolved through substring lookup.
func matchBalanceCheckReference(e *Engine, ctx context.Context, t *turn) (string, bool) {
	m := refTokenRe.FindStringSubmatch(t.Lower)
	if m == nil || !containsAny(t.Lower, enoughBalancePhrases) {
		return "", false
	}
	refPartial := m[1]

	rec, ok := history.ByReference(t.State.History, refPartial)
	if !ok {
		return fmt.Sprintf("Could not find leave application with reference %s.", refPartial), true
	}

	daysRequested := rec.TotalDays.Float()
	balance := catalogBalanceFor(t.State, rec.TypeDesc)

	verdict := "Yes, you have enough balance to get approval for this application."
	if balance < daysRequested {
		verdict = "No, you do not have enough balance to get approval for this application."
	}
	return fmt.Sprintf("%s\n\n- Leave Type: %s\n- Days Requested: %s\n- Your Current Balance: %s",
		verdict, strings.TrimSpace(rec.TypeDesc), fmtDays(daysRequested), fmtDays(balance)), true
}

// catalogBalanceFor cross-references a history record's free-text type
// description into the catalog and returns that type's balance, or 0 when
// nothing matches.
func catalogBalanceFor(st *session.State, recordDesc string) float64 {
	lt, ok := ResolveTypeContaining(st.LeaveTypes, recordDesc)
	if !ok {
		return 0
	}
	return st.BalanceFor(lt.LpdID)
}

// matchTypeBalanceLeft answers "<short> leave ... left" per catalog type,
// where <short> is the first word of the description. Catalog iteration
// order is authoritative: the first match wins.
func matchTypeBalanceLeft(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !strings.Contains(t.Lower, "left") {
		return "", false
	}
	for _, lt := range t.State.LeaveTypes {
		desc := strings.ToLower(lt.Description)
		fields := strings.Fields(desc)
		if len(fields) == 0 {
			continue
		}
		if strings.Contains(t.Lower, fields[0]+" leave") {
			return fmt.Sprintf("You have %s days of %s remaining.",
				rawBalance(t.State, lt.LpdID), lt.TitleDesc()), true
		}
	}
	return "", false
}

// rawBalance renders the summary's balance field as served, "0" when the
// summary is absent.
func rawBalance(st *session.State, lpdID int) string {
	sum, ok := st.SummaryFor(lpdID)
	if !ok || sum.Balance == "" {
		return "0"
	}
	return sum.Balance.String()
}

var airTicketRe = regexp.MustCompile(`air ?ticket`)

// matchAirTicket reports air-ticket eligibility, per type when one is
// named, otherwise summarized across the catalog.
func matchAirTicket(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !airTicketRe.MatchString(t.Lower) {
		return "", false
	}

	if lt, ok := typeMentioned(t.State.LeaveTypes, t.Lower); ok {
		sum, _ := t.State.SummaryFor(lt.LpdID)
		if sum.AirTicket.IsSet() {
			percent := sum.AirTicketPercent.String()
			if percent == "" {
				percent = "N/A"
			}
			return fmt.Sprintf("You are eligible for an air ticket for %s leave. Air ticket reimbursement percent: %s%%.",
				lt.Description, percent), true
		}
		return fmt.Sprintf("You are not eligible for an air ticket for %s leave.", lt.Description), true
	}

	var eligible []string
	for _, lt := range t.State.LeaveTypes {
		if sum, ok := t.State.SummaryFor(lt.LpdID); ok && sum.AirTicket.IsSet() {
			eligible = append(eligible, domain.CoalesceStr(lt.Description, "Unknown"))
		}
	}
	if len(eligible) > 0 {
		return "You are eligible for air tickets under the following leave types: " +
			strings.Join(eligible, ", ") + ".", true
	}
	return "You are not eligible for air tickets under any leave type according to your profile.", true
}

var balanceTableKeywords = []string{
	"leave balance",
	"how many leaves left",
	"balance leaves",
	"my leave balance",
	"available leaves",
	"leaves remaining",
}

// matchBalanceTable lists balance and entitlement for every catalog type.
func matchBalanceTable(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, balanceTableKeywords, FuzzyThresholdDefault) {
		return "", false
	}
	if len(t.State.LeaveTypes) == 0 {
		return "⚠️ Could not fetch your leave types.", true
	}
	lines := []string{"**Your current leave balances:**"}
	for _, lt := range t.State.LeaveTypes {
		sum, ok := t.State.SummaryFor(lt.LpdID)
		if !ok || sum.Err != "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: Balance **%s**, Eligible **%s**",
			domain.CoalesceStr(lt.Description, "N/A"), sum.Balance, sum.Eligible))
	}
	return strings.Join(lines, "\n\n"), true
}

var leavePolicyKeywords = []string{
	"leave policy",
	"my leave policy",
	"what is my leave policy",
	"show my leave policy",
	"explain leave policy",
	"leave entitlements",
	"leave rules",
	"leave policy details",
	"policy for leaves",
	"leave policy information",
}

// matchLeavePolicy renders the policy name and an entitlement table, with
// summaries joined to catalog rows by attachment-type id.
func matchLeavePolicy(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, leavePolicyKeywords, FuzzyThresholdLoose) {
		return "", false
	}
	return formatLeavePolicy(t.State), true
}

func formatLeavePolicy(st *session.State) string {
	byAtm := map[string]domain.LeaveSummary{}
	for _, sum := range st.Summaries {
		if sum.AtmTypeID != "" {
			byAtm[sum.AtmTypeID.String()] = sum
		}
	}

	lines := []string{
		fmt.Sprintf("**Your leave policy:** %s", st.Profile.LeavePolicy()),
		"\n**Entitlements:**",
		"| Leave Type | Eligible (days/year) | Attach Required | Paid/Unpaid | Air Ticket |",
		"|------------|----------------------|----------------|-------------|------------|",
	}
	for _, lt := range st.LeaveTypes {
		sum, joined := byAtm[strconv.Itoa(lt.AtmID)]

		attach := "No"
		if lt.AttachRequired.IsSet() {
			attach = "Yes"
		}

		eligibleStr := "—"
		if joined {
			if v := sum.Eligible.Float(); v != 0 {
				eligibleStr = strconv.Itoa(int(v))
			}
		}

		paidStr := "—"
		if joined && sum.Paid.IsSet() {
			paidStr = "Paid"
		} else if joined && sum.Unpaid.IsSet() {
			paidStr = "Unpaid"
		}

		airStr := "No"
		if joined && sum.AirTicket.IsSet() {
			if p := sum.AirTicketPercent.String(); p != "" {
				airStr = fmt.Sprintf("Yes (%s%%)", p)
			} else {
				airStr = "Yes"
			}
		}

		lines = append(lines, fmt.Sprintf("| %s | %s | %s | %s | %s |",
			domain.CoalesceStr(lt.Description, "N/A"), eligibleStr, attach, paidStr, airStr))
	}
	return strings.Join(lines, "\n")
}

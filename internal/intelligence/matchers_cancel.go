package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/history"
)

var cancelKeywords = []string{
	"cancel my leave", "can i cancel my leave", "withdraw my leave", "can i withdraw my leave",
	"cancel approved leave", "withdraw approved leave", "can i cancel approved leave",
	"can i withdraw approved leave", "can i cancel my approved leave",
	"can i reschedule my leave", "reschedule my leave", "can i change my leave dates",
	"modify my leave", "change leave dates", "edit leave application",
}

var cancelRefRe = regexp.MustCompile(`(lp|ref)[^\d]*(\d{3,})`)

// matchCancelReschedule answers whether a leave application can still be
// cancelled or moved. A reference in the utterance selects the record;
// otherwise the date-max approved leave is the subject.
func matchCancelReschedule(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, cancelKeywords) {
		return "", false
	}

	var rec domain.LeaveRecord
	var ok bool
	if m := cancelRefRe.FindStringSubmatch(t.Lower); m != nil {
		rec, ok = history.ByReference(t.State.History, m[2])
	} else {
		rec, ok = history.Latest(history.Approved(t.State.History))
	}
	if !ok {
		return "No approved leave application found to cancel or reschedule.", true
	}

	ref := domain.CoalesceStr(rec.Reference, "N/A")
	ltype := domain.CoalesceStr(rec.TypeDesc, "N/A")
	status := domain.CoalesceStr(rec.Status, "N/A")
	if rec.Editable.IsSet() && rec.IsApproved() {
		return fmt.Sprintf("Yes, you can cancel or reschedule your approved leave (Ref %s: %s, %s to %s).\n"+
			"Please use the ERP self-service portal to cancel or request a change for this leave application.",
			ref, ltype, rec.FromDateOnly(), rec.ToDateOnly()), true
	}

	var reasons []string
	if !rec.Editable.IsSet() {
		reasons = append(reasons, "it is locked for editing")
	}
	if !rec.IsApproved() {
		reasons = append(reasons, fmt.Sprintf("status is '%s'", status))
	}
	return fmt.Sprintf("No, you cannot cancel or reschedule your leave (Ref %s: %s, %s to %s) because %s. "+
		"Contact HR if you believe this is incorrect.",
		ref, ltype, rec.FromDateOnly(), rec.ToDateOnly(), strings.Join(reasons, " and ")), true
}

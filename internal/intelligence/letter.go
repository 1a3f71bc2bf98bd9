package intelligence

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/history"
)

// letterRefRe also matches bare digit runs, unlike the cancel matcher's
// reference pattern, so "draft a letter for 123" selects by reference.
var letterRefRe = regexp.MustCompile(`(lp|ref)?\s*(\d{3,})`)

const letterTemplate = `
**To:** %s (<%s>)

Subject: Request for Approval of Leave Application (Ref: %s)

Dear %s,

I hope this message finds you well. I am writing to formally request your approval for my leave application referenced as %s.

**Details of Leave Application:**
- Leave Type: %s
- Requested Dates: %s to %s
- Total Days: %s

Due to [brief reason, e.g., health reasons], I was unable to attend work during the above period. I have ensured all necessary handover arrangements for my responsibilities.

I kindly request your approval of this leave request. Please let me know if you need any further information.

Thank you for your attention.

Sincerely,
%s
%s, %s
%s
Date: %s
`

// matchDraftApprovalLetter renders a ready-to-send approval request for
// a leave application. Without a reference in the utterance the last
// history element is the subject. Letter fields read the raw profile
// columns, not the fallback chains, mirroring what the letter surface
// has always shown.
func matchDraftApprovalLetter(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !strings.Contains(t.Lower, "draft a letter") && !strings.Contains(t.Lower, "requesting to approve") {
		return "", false
	}

	var rec domain.LeaveRecord
	var ok bool
	if m := letterRefRe.FindStringSubmatch(t.Lower); m != nil {
		rec, ok = history.ByReference(t.State.History, m[2])
	} else if n := len(t.State.History); n > 0 {
		rec, ok = t.State.History[n-1], true
	}
	if !ok {
		return "Could not find the specified leave application.", true
	}

	p := t.State.Profile
	managerName := domain.CoalesceStr(p.ManagerName, domain.NotAvailable)
	ref := domain.CoalesceStr(rec.Reference, "N/A")
	return fmt.Sprintf(letterTemplate,
		managerName, domain.CoalesceStr(p.Email, domain.NotAvailable),
		ref, managerName, ref,
		domain.CoalesceStr(rec.TypeDesc, "N/A"),
		rec.FromDateOnly(), rec.ToDateOnly(), rec.TotalDays,
		domain.CoalesceStr(p.FullName, domain.NotAvailable),
		domain.CoalesceStr(p.Designation, domain.NotAvailable),
		domain.CoalesceStr(p.Department, domain.NotAvailable),
		domain.CoalesceStr(p.CompanyName, domain.NotAvailable),
		t.Now.Format("2006-01-02")), true
}

package history

import (
	"fmt"
	"strings"

	"github.com/ohshaan/Leave-botanv/internal/domain"
)

// NoApplicationsMessage is the fixed digest for an empty record list.
const NoApplicationsMessage = "No leave applications found for this period."

// FormatDigest renders records as a markdown bullet list, one line per
// record with the status bolded.
func FormatDigest(records []domain.LeaveRecord) string {
	if len(records) == 0 {
		return NoApplicationsMessage
	}
	lines := make([]string, 0, len(records))
	for _, r := range records {
		ref := domain.CoalesceStr(r.Reference, "N/A")
		ltype := domain.CoalesceStr(r.TypeDesc, "N/A")
		status := domain.CoalesceStr(r.Status, "N/A")
		lines = append(lines, fmt.Sprintf("- Ref %s: %s, %s to %s (%s day(s)) — **%s**",
			ref, ltype, r.FromDateOnly(), r.ToDateOnly(), r.TotalDays, status))
	}
	return strings.Join(lines, "\n")
}

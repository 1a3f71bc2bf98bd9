// Package history provides pure query functions over an employee's
// leave-history records.
package history

import (
	"strings"
	"time"

	"github.com/ohshaan/Leave-botanv/internal/domain"
)

// fromDate parses the date portion of a record's from-date. ok is false
// for absent or malformed dates; callers silently drop such records.
func fromDate(r domain.LeaveRecord) (time.Time, bool) {
	d := r.FromDateOnly()
	if d == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ByYear keeps records whose from-date falls in the given year.
func ByYear(records []domain.LeaveRecord, year int) []domain.LeaveRecord {
	var out []domain.LeaveRecord
	for _, r := range records {
		if t, ok := fromDate(r); ok && t.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// ByMonth keeps records whose from-date falls in the given month and year.
func ByMonth(records []domain.LeaveRecord, month time.Month, year int) []domain.LeaveRecord {
	var out []domain.LeaveRecord
	for _, r := range records {
		if t, ok := fromDate(r); ok && t.Year() == year && t.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// ByReference returns the first record whose reference number contains
// partial as a substring. Containment, not equality: "123" finds
// "LP00123X".
func ByReference(records []domain.LeaveRecord, partial string) (domain.LeaveRecord, bool) {
	for _, r := range records {
		if strings.Contains(r.Reference, partial) {
			return r, true
		}
	}
	return domain.LeaveRecord{}, false
}

// Approved keeps records whose status, trimmed and case-folded, equals
// exactly "approved".
func Approved(records []domain.LeaveRecord) []domain.LeaveRecord {
	var out []domain.LeaveRecord
	for _, r := range records {
		if r.IsApproved() {
			out = append(out, r)
		}
	}
	return out
}

// ApprovedInYear filters Approved down to the given from-date year, with
// the same drop-on-parse-failure policy as ByYear.
func ApprovedInYear(records []domain.LeaveRecord, year int) []domain.LeaveRecord {
	var out []domain.LeaveRecord
	for _, r := range records {
		if !r.IsApproved() {
			continue
		}
		if t, ok := fromDate(r); ok && t.Year() == year {
			out = append(out, r)
		}
	}
	return out
}

// Latest returns the record with the lexicographically maximum from-date
// string. ISO-8601 date-times sort correctly as strings, so no parsing is
// needed. ok is false for an empty input.
func Latest(records []domain.LeaveRecord) (domain.LeaveRecord, bool) {
	if len(records) == 0 {
		return domain.LeaveRecord{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.FromDate > best.FromDate {
			best = r
		}
	}
	return best, true
}

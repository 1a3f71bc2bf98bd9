package domain

import "strings"

// LeaveType is one entry of the per-employee leave catalog. LpdID is the
// opaque type id the summary map is keyed by.
type LeaveType struct {
	LpdID          int        `json:"Lpd_ID_N"`
	Description    string     `json:"Lvm_Description_V"`
	AtmID          int        `json:"Atm_ID_N"`
	AttachRequired FlexString `json:"Lvm_AttachRequired_N"`
}

// TitleDesc returns the catalog description in title case for replies.
func (t LeaveType) TitleDesc() string {
	return TitleCase(t.Description)
}

// LeaveSummary is the server-computed balance snapshot for one leave type,
// queried for today as both from- and to-date.
type LeaveSummary struct {
	Balance          FlexString `json:"Balance"`
	Eligible         FlexString `json:"Eligible"`
	Paid             FlexString `json:"Paid"`
	Unpaid           FlexString `json:"UnPaid"`
	AirTicket        FlexString `json:"Airticket"`
	AirTicketPercent FlexString `json:"AirTicketPercent"`
	AtmTypeID        FlexString `json:"Atm_TypeID_N"`
	Err              string     `json:"error,omitempty"`
}

// LeaveRecord is one leave-history row. Dates arrive as date-time strings
// where only the date portion is significant; Status is free text compared
// case-insensitively against "approved".
type LeaveRecord struct {
	Reference string     `json:"LeaveGrid_Ela_RefferNo_V"`
	TypeDesc  string     `json:"LeaveGrid_Lvm_Description_V"`
	FromDate  string     `json:"LeaveGrid_Ela_FromDate_D"`
	ToDate    string     `json:"LeaveGrid_Ela_ToDate_D"`
	TotalDays FlexString `json:"LeaveGrid_Ela_Tot"`
	Status    string     `json:"LeaveGrid_Status"`
	Editable  FlexString `json:"Editable"`
}

// FromDateOnly strips the time portion of the from-date.
func (r LeaveRecord) FromDateOnly() string { return DateOnly(r.FromDate) }

// ToDateOnly strips the time portion of the to-date.
func (r LeaveRecord) ToDateOnly() string { return DateOnly(r.ToDate) }

// IsApproved compares the trimmed, case-folded status against "approved".
func (r LeaveRecord) IsApproved() bool {
	return strings.EqualFold(strings.TrimSpace(r.Status), "approved")
}

// DateOnly returns the part of an ERP date-time string before the "T".
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// TitleCase uppercases the first letter of each space-separated word,
// lowercasing the rest, matching how reply text renders catalog entries.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Package testutil provides shared fixtures for session and cascade tests.
package testutil

import (
	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/llm"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// SampleProfile returns a fully populated employee profile.
func SampleProfile() domain.EmployeeProfile {
	return domain.EmployeeProfile{
		FullName:     "Jordan Blake",
		Designation:  "Software Engineer",
		Department:   "Engineering",
		ManagerName:  "Sam Carter",
		Email:        "sam.carter@acme.example",
		ManagerEmail: "sam.carter@acme.example",
		CompanyName:  "Acme Trading LLC",
		ShiftPolicy:  "General Shift",
		VisaType:     "Work Visa",
		LeavePolicyName: "Standard Leave Policy",
	}
}

// SampleCatalog returns a three-entry leave-type catalog.
func SampleCatalog() []domain.LeaveType {
	return []domain.LeaveType{
		{LpdID: 1, Description: "Annual Leave", AtmID: 11, AttachRequired: "0"},
		{LpdID: 2, Description: "Sick Leave", AtmID: 12, AttachRequired: "1"},
		{LpdID: 3, Description: "Casual Leave", AtmID: 13, AttachRequired: "0"},
	}
}

// SampleSummaries returns balances keyed by leave-type id: Annual 3,
// Sick 4, Casual 10.
func SampleSummaries() map[int]domain.LeaveSummary {
	return map[int]domain.LeaveSummary{
		1: {Balance: "3", Eligible: "30", Paid: "1", AirTicket: "1", AirTicketPercent: "100", AtmTypeID: "11"},
		2: {Balance: "4", Eligible: "15", Paid: "1", AtmTypeID: "12"},
		3: {Balance: "10", Eligible: "10", Unpaid: "1", AtmTypeID: "13"},
	}
}

// SampleHistory returns three records; the list order deliberately does
// not match from-date order so the last-element and date-max notions of
// "latest" disagree.
func SampleHistory() []domain.LeaveRecord {
	return []domain.LeaveRecord{
		{
			Reference: "LP00120",
			TypeDesc:  "Annual Leave",
			FromDate:  "2025-06-02T00:00:00",
			ToDate:    "2025-06-06T00:00:00",
			TotalDays: "5",
			Status:    "Approved",
			Editable:  "1",
		},
		{
			Reference: "LP00123X",
			TypeDesc:  "Sick Leave",
			FromDate:  "2025-03-10T00:00:00",
			ToDate:    "2025-03-12T00:00:00",
			TotalDays: "3",
			Status:    " Approved ",
			Editable:  "0",
		},
		{
			Reference: "LP00145",
			TypeDesc:  "Casual Leave",
			FromDate:  "2025-04-01T00:00:00",
			ToDate:    "2025-04-01T00:00:00",
			TotalDays: "1",
			Status:    "Pending",
			Editable:  "1",
		},
	}
}

// NewState assembles a ready-to-query session state without running
// bootstrap, transcript anchored by a stub system prompt.
func NewState() *session.State {
	st := &session.State{
		ID:         "test-session",
		EmpID:      "E100",
		Profile:    SampleProfile(),
		LeaveTypes: SampleCatalog(),
		History:    SampleHistory(),
		Summaries:  SampleSummaries(),
		HelpDoc:    "To apply for leave, open ESS, choose Leave Application, fill the form and submit for approval.",
	}
	st.Transcript = []llm.Message{{Role: llm.RoleSystem, Content: "system prompt"}}
	return st
}

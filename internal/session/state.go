// Package session holds the per-employee conversation state: the
// bootstrapped ERP snapshot, the transcript, and the single pending
// application slot.
package session

import (
	"github.com/ohshaan/Leave-botanv/internal/domain"
	"github.com/ohshaan/Leave-botanv/internal/llm"
)

// State is one employee's session. The ERP snapshot (Profile, LeaveTypes,
// History, Summaries) is built once at bootstrap and read-only until the
// bound identity changes; the transcript and the pending slot mutate per
// turn.
type State struct {
	ID    string // session id, regenerated on every rebind
	EmpID string

	Profile    domain.EmployeeProfile
	LeaveTypes []domain.LeaveType
	History    []domain.LeaveRecord
	Summaries  map[int]domain.LeaveSummary

	HelpDoc string

	// Transcript is append-only; Transcript[0] is always the system
	// prompt built at bootstrap.
	Transcript []llm.Message

	// Pending is the cross-turn clarification memory. At most one exists
	// and every terminating cascade path either sets or clears it.
	Pending *domain.PendingApplication
}

// SummaryFor returns the bootstrapped summary for a leave-type id.
func (s *State) SummaryFor(lpdID int) (domain.LeaveSummary, bool) {
	sum, ok := s.Summaries[lpdID]
	return sum, ok
}

// BalanceFor returns the remaining days for a leave-type id, coercing
// absent or malformed balances to 0.
func (s *State) BalanceFor(lpdID int) float64 {
	sum, ok := s.Summaries[lpdID]
	if !ok || sum.Err != "" {
		return 0
	}
	return sum.Balance.Float()
}

// Append adds a message to the transcript.
func (s *State) Append(role, content string) {
	s.Transcript = append(s.Transcript, llm.Message{Role: role, Content: content})
}

// AppendFunctionResult adds a function-role message carrying a tool result.
func (s *State) AppendFunctionResult(name, content string) {
	s.Transcript = append(s.Transcript, llm.Message{Role: llm.RoleFunction, Name: name, Content: content})
}

// SetPending records an unresolved day-count application awaiting a leave
// type from the user.
func (s *State) SetPending(numDays int, leaveType string) {
	s.Pending = &domain.PendingApplication{NumDays: numDays, LeaveType: leaveType}
}

// ClearPending discards the clarification memory.
func (s *State) ClearPending() {
	s.Pending = nil
}

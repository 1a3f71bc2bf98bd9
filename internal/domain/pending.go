package domain

// PendingApplication remembers an unresolved "apply for N days" request
// across exactly one turn, until the user names a leave type or any other
// terminating matcher clears it. LeaveType is empty when the user named no
// type at all.
type PendingApplication struct {
	NumDays   int
	LeaveType string
}

package intelligence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohshaan/Leave-botanv/internal/testutil"
)

func TestLeavesThisYearCount(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "how many leaves did i apply this year")

	assert.Equal(t, "leaves_this_year", res.Matcher)
	assert.Equal(t, "You have applied for 3 leaves this year.", res.Text)
}

func TestLeavesThisMonthEmpty(t *testing.T) {
	e := newEngine(nil) // clock fixed to July 2025; no July records exist
	st := testutil.NewState()

	res := resolve(t, e, st, "did i apply for any leaves this month")

	assert.Equal(t, "leaves_this_month", res.Matcher)
	assert.Equal(t, "No leave applications found for this period.", res.Text)
}

func TestAllLeavesDigest(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "show me all my leave applications")

	assert.Equal(t, "all_leaves", res.Matcher)
	assert.Contains(t, res.Text, "- Ref LP00120: Annual Leave, 2025-06-02 to 2025-06-06 (5 day(s)) — **Approved**")
	assert.Contains(t, res.Text, "- Ref LP00145: Casual Leave, 2025-04-01 to 2025-04-01 (1 day(s)) — **Pending**")
}

func TestWhoApproves(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "who approves my leaves")

	assert.Equal(t, "who_approves", res.Matcher)
	assert.Equal(t, "Your leave requests can be approved by your reporting manager, Sam Carter.", res.Text)
}

func TestWhoApprovesWithoutManager(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.Profile.ManagerName = ""

	res := resolve(t, e, st, "who approves my leaves")

	assert.Equal(t, "The reporting manager information is not available in your profile.", res.Text)
}

func TestLastApprovedLeaveUsesDateMax(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "what was my last approved leave")

	assert.Equal(t, "last_approved_leave", res.Matcher)
	assert.Equal(t, "Your last approved leave was Ref LP00120: Annual Leave, from 2025-06-02 to 2025-06-06 (5 day(s)).", res.Text)
}

func TestHaveLeaveTypeBalance(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "do i have sick leave")

	assert.Equal(t, "have_leave_type", res.Matcher)
	assert.Equal(t, "You have 4 days balance for Sick Leave.", res.Text)
}

func TestHaveLeaveTypeUnknown(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "do i have hajj leave")

	assert.Equal(t, "I could not find information about 'hajj' leave in your profile.", res.Text)
}

func TestLastLeaveUsesDateMax(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "what was my last leave")

	assert.Equal(t, "last_leave", res.Matcher)
	assert.Equal(t, "Your last leave was Ref LP00120: Annual Leave, from 2025-06-02 to 2025-06-06 (5 day(s)) — **Approved**", res.Text)
}

func TestLastLeaveEmptyHistory(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.History = nil

	res := resolve(t, e, st, "what was my last leave")

	assert.Equal(t, "⚠️ Could not fetch your leave history.", res.Text)
}

func TestBalanceTable(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "show me my leave balance")

	assert.Equal(t, "balance_table", res.Matcher)
	assert.Contains(t, res.Text, "**Your current leave balances:**")
	assert.Contains(t, res.Text, "- Annual Leave: Balance **3**, Eligible **30**")
	assert.Contains(t, res.Text, "- Casual Leave: Balance **10**, Eligible **10**")
}

func TestBalanceTableWithoutCatalog(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.LeaveTypes = nil

	res := resolve(t, e, st, "show me my leave balance")

	assert.Equal(t, "⚠️ Could not fetch your leave types.", res.Text)
}

func TestBalanceTableSkipsFailedSummaries(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	sum := st.Summaries[2]
	sum.Err = "no leave summary found for given parameters"
	st.Summaries[2] = sum

	res := resolve(t, e, st, "show me my leave balance")

	assert.NotContains(t, res.Text, "Sick Leave")
	assert.Contains(t, res.Text, "Annual Leave")
}

func TestLeavePolicyTable(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "what is my leave policy")

	assert.Equal(t, "leave_policy", res.Matcher)
	assert.Contains(t, res.Text, "**Your leave policy:** Standard Leave Policy")
	assert.Contains(t, res.Text, "| Leave Type | Eligible (days/year) | Attach Required | Paid/Unpaid | Air Ticket |")
	assert.Contains(t, res.Text, "| Annual Leave | 30 | No | Paid | Yes (100%) |")
	assert.Contains(t, res.Text, "| Sick Leave | 15 | Yes | Paid | No |")
	assert.Contains(t, res.Text, "| Casual Leave | 10 | No | Unpaid | No |")
}

func TestAirTicketForNamedType(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "do i get an air ticket for annual leave")

	assert.Equal(t, "air_ticket", res.Matcher)
	assert.Equal(t, "You are eligible for an air ticket for Annual Leave leave. Air ticket reimbursement percent: 100%.", res.Text)
}

func TestAirTicketForIneligibleType(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "air ticket for sick leave")

	assert.Equal(t, "You are not eligible for an air ticket for Sick Leave leave.", res.Text)
}

func TestAirTicketSummaryAcrossTypes(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "am i eligible for an airticket")

	assert.Equal(t, "You are eligible for air tickets under the following leave types: Annual Leave.", res.Text)
}

func TestContactManager(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()

	res := resolve(t, e, st, "how can i contact my manager")

	assert.Equal(t, "contact_manager", res.Matcher)
	assert.Equal(t, "Contact information for your reporting manager, Sam Carter:\n- Email: sam.carter@acme.example", res.Text)
}

func TestContactManagerNoDetails(t *testing.T) {
	e := newEngine(nil)
	st := testutil.NewState()
	st.Profile.ManagerEmail = ""
	st.Profile.ManagerMobile = ""

	res := resolve(t, e, st, "how can i contact my manager")

	assert.Equal(t, "Contact information for your reporting manager, Sam Carter:\nNo contact details available in your profile.", res.Text)
}

func TestProfileFieldLookups(t *testing.T) {
	e := newEngine(nil)

	cases := []struct {
		utterance string
		matcher   string
		reply     string
	}{
		{"what is my designation", "profile_job_post", "Your job post is: Software Engineer."},
		{"which department do i work in", "profile_department", "You work in the Engineering department."},
		{"who is my manager", "profile_manager", "Your reporting manager is: Sam Carter."},
		{"what is my shift", "profile_shift", "Your shift policy is: General Shift."},
		{"what is my visa type", "profile_visa", "Your visa type is: Work Visa."},
	}
	for _, tc := range cases {
		st := testutil.NewState()
		res := resolve(t, e, st, tc.utterance)
		assert.Equal(t, tc.matcher, res.Matcher, "utterance %q", tc.utterance)
		assert.Equal(t, tc.reply, res.Text, "utterance %q", tc.utterance)
	}
}

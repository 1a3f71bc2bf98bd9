package intelligence

import (
	"context"
	"fmt"
	"strings"
)

var whoApprovesKeywords = []string{
	"who can approve my leave",
	"who approves my leaves",
	"who is the leave approver",
	"who can approve my leaves",
	"who approves leave",
	"leave approval authority",
}

func matchWhoApproves(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, whoApprovesKeywords, FuzzyThresholdLoose) {
		return "", false
	}
	name := t.State.Profile.ManagerName
	if name == "" || strings.EqualFold(name, "not available") {
		return "The reporting manager information is not available in your profile.", true
	}
	return fmt.Sprintf("Your leave requests can be approved by your reporting manager, %s.", name), true
}

var contactManagerKeywords = []string{
	"how can i contact my manager",
	"how can i contact him",
	"how do i reach my manager",
	"contact my reporting manager",
	"manager contact",
	"contact details for my manager",
}

func matchContactManager(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !FuzzyMatch(t.Lower, contactManagerKeywords, FuzzyThresholdLoose) {
		return "", false
	}
	p := t.State.Profile
	lines := []string{fmt.Sprintf("Contact information for your reporting manager, %s:", p.Manager())}
	email := p.ManagerContactEmail()
	mobile := p.ManagerContactMobile()
	if email != "" {
		lines = append(lines, "- Email: "+email)
	}
	if mobile != "" {
		lines = append(lines, "- Mobile: "+mobile)
	}
	if email == "" && mobile == "" {
		lines = append(lines, "No contact details available in your profile.")
	}
	return strings.Join(lines, "\n"), true
}

// The remaining profile matchers are plain substring checks rather than
// fuzzy ones, so a stray mention of "shift" or "visa" anywhere in the
// utterance is enough to trigger them.

var jobPostKeywords = []string{
	"job post", "job title", "designation", "what is my job post", "what is my designation", "position",
}

func matchJobPost(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, jobPostKeywords) {
		return "", false
	}
	return fmt.Sprintf("Your job post is: %s.", t.State.Profile.JobPost()), true
}

var departmentKeywords = []string{
	"department", "which department", "my department", "where do i work", "which team", "department do i work",
}

func matchDepartment(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, departmentKeywords) {
		return "", false
	}
	return fmt.Sprintf("You work in the %s department.", t.State.Profile.DepartmentName()), true
}

var managerKeywords = []string{
	"manager", "reporting manager", "who is my manager", "who is my reporting manager", "supervisor",
}

func matchManager(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, managerKeywords) {
		return "", false
	}
	return fmt.Sprintf("Your reporting manager is: %s.", t.State.Profile.Manager()), true
}

var shiftKeywords = []string{
	"shift policy", "my shift policy", "what is my shift", "shift", "work shift",
}

func matchShift(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, shiftKeywords) {
		return "", false
	}
	return fmt.Sprintf("Your shift policy is: %s.", t.State.Profile.ShiftDescriptor()), true
}

var visaKeywords = []string{
	"visa", "visa type", "what is my visa", "what is my visa type", "work visa", "residence permit", "rp type",
}

func matchVisa(e *Engine, ctx context.Context, t *turn) (string, bool) {
	if !containsAny(t.Lower, visaKeywords) {
		return "", false
	}
	return fmt.Sprintf("Your visa type is: %s.", t.State.Profile.VisaDescriptor()), true
}

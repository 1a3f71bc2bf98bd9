package session

import (
	"encoding/json"
	"fmt"
	"os"
)

// HelpDocPlaceholder is reported when the help document file is missing.
const HelpDocPlaceholder = "Help document not found. Please add leave_help.txt."

// LoadHelpDoc reads the procedure help document. A missing file yields
// the placeholder string, not an error.
func LoadHelpDoc(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return HelpDocPlaceholder
	}
	return string(data)
}

const systemPromptHeader = "You are an HR assistant. The user can ask about leave, policy, attachments, or any employee profile details " +
	"(like job post, shift, company, reporting manager, RP expiry date, nationality, pay type, designation, etc.). " +
	"You have access to this employee's full profile, available leave types, leave summaries, and the help document. " +
	"Use only these data fields when answering questions. " +
	"If a field is not available, reply 'Not available'. " +
	"If the question is about procedure, use the help document below."

// buildSystemPrompt renders the full-context system prompt that anchors
// the transcript, embedding the bootstrapped snapshot as indented JSON.
func buildSystemPrompt(s *State) string {
	profileJSON := marshalIndent(s.Profile)
	typesJSON := marshalIndent(s.LeaveTypes)
	summariesJSON := marshalIndent(s.Summaries)

	return fmt.Sprintf("%s\n\nHELP DOCUMENT:\n%s\n\nEMPLOYEE PROFILE:\n%s\n\nLEAVE TYPES:\n%s\n\nLEAVE SUMMARIES:\n%s",
		systemPromptHeader, s.HelpDoc, profileJSON, typesJSON, summariesJSON)
}

func marshalIndent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

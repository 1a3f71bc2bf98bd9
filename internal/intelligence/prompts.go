package intelligence

import "fmt"

// ProcedureNotAvailable is the fixed sentence the restricted prompt
// instructs the model to use when the help document lacks the answer.
const ProcedureNotAvailable = "Information not available in the help document."

// procedureUnreachable is the degraded reply when the procedure prompt
// cannot reach the model at all.
const procedureUnreachable = "Sorry, I could not fetch the leave application procedure right now. Please try again later."

// buildProcedureSystemPrompt renders the restricted system prompt for
// procedure questions: help document only, no employee data.
func buildProcedureSystemPrompt(helpDoc string) string {
	return "You are an HR assistant. " +
		"Answer strictly based on the following HELP DOCUMENT about leave application procedures. " +
		"Do not mention employee data, leave history, or balances. " +
		"If the answer is not in the document, say '" + ProcedureNotAvailable + "'\n\n" +
		"HELP DOCUMENT:\n" + helpDoc + "\n"
}

// procedureUserMsg renders the synthesized user request sent with the
// restricted prompt. leaveType is empty for the general procedure.
func procedureUserMsg(leaveType string) string {
	if leaveType == "" {
		return "Please explain the general procedure for applying leave, based strictly on the provided help document."
	}
	return fmt.Sprintf("Please explain the procedure for applying for %s leave, based strictly on the provided help document.", leaveType)
}

package workflowaction

import (
	"fmt"
	"strings"
)

// CompletionPolicy decides how a batch in which only some ids qualified is
// executed and reported. Audits are identical under every policy.
type CompletionPolicy string

const (
	// POLICY_LENIENT executes the qualifying set and reports success unless a
	// collaborator failed, whatever the number of skipped ids.
	POLICY_LENIENT CompletionPolicy = "lenient"
	// POLICY_PARTIAL executes the qualifying set and reports how many ids were
	// processed. A batch with no qualifying id is reported as an error.
	POLICY_PARTIAL CompletionPolicy = "partial"
	// POLICY_ALL_OR_NOTHING executes only when every id qualified.
	POLICY_ALL_OR_NOTHING CompletionPolicy = "all-or-nothing"
)

func ParseCompletionPolicy(name string) (CompletionPolicy, error) {
	switch p := CompletionPolicy(strings.ToLower(name)); p {
	case "":
		return POLICY_LENIENT, nil
	case POLICY_LENIENT, POLICY_PARTIAL, POLICY_ALL_OR_NOTHING:
		return p, nil
	}
	return "", fmt.Errorf("unknown completion policy %q", name)
}

func (p CompletionPolicy) shouldExecute(b *BatchResult) bool {
	if p == POLICY_ALL_OR_NOTHING {
		return b.AllQualified()
	}
	return true
}

// resolve returns either a status message or a single error for a batch that
// finished without a fatal error.
func (p CompletionPolicy) resolve(b *BatchResult) (string, *platformMessage) {
	ids := "[" + strings.Join(b.WorkflowIds(), ", ") + "]"
	notQualified := RPR_WAA_NOT_ALL_QUALIFIED
	qualified := b.Count(QUALIFIED)
	switch p {
	case POLICY_PARTIAL:
		if qualified == 0 {
			return "", &notQualified
		}
		return fmt.Sprintf("Processed %d of %d workflowIds '%s' successfully", qualified, len(b.Decisions), ids), nil
	case POLICY_ALL_OR_NOTHING:
		if !b.AllQualified() {
			return "", &notQualified
		}
	}
	return fmt.Sprintf("Process the workflowIds '%s' successfully", ids), nil
}

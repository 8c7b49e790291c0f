package workflowaction

import "github.com/mohitkumar/workflowaction/model"

type Outcome int

const (
	QUALIFIED Outcome = iota
	NOT_FOUND
	PRECONDITION_FAILED
)

func (o Outcome) String() string {
	switch o {
	case QUALIFIED:
		return "QUALIFIED"
	case NOT_FOUND:
		return "NOT_FOUND"
	case PRECONDITION_FAILED:
		return "PRECONDITION_FAILED"
	}
	return "UNDEFINED"
}

// Decision is the outcome of checking one workflow id. Record is nil for NOT_FOUND.
type Decision struct {
	WorkflowId string
	Outcome    Outcome
	Record     *model.WorkflowStatusRecord
}

func decide(workflowId string, record *model.WorkflowStatusRecord) Decision {
	switch {
	case record == nil:
		return Decision{WorkflowId: workflowId, Outcome: NOT_FOUND}
	case !record.IsPaused():
		return Decision{WorkflowId: workflowId, Outcome: PRECONDITION_FAILED, Record: record}
	default:
		return Decision{WorkflowId: workflowId, Outcome: QUALIFIED, Record: record}
	}
}

func (d Decision) Successful() bool {
	return d.Outcome == QUALIFIED
}

func (d Decision) message() platformMessage {
	switch d.Outcome {
	case NOT_FOUND:
		return RPR_WAA_WORKFLOW_ID_NOT_FOUND
	case PRECONDITION_FAILED:
		return RPR_WAA_NOT_PAUSED
	}
	return RPR_WAA_VALIDATION_SUCCESS
}

// BatchResult accumulates the decisions of one request in input order.
type BatchResult struct {
	Action    WorkflowActionCode
	Decisions []Decision
	// Executed is set once the action executor accepted the qualifying set.
	Executed bool
}

func newBatchResult(action WorkflowActionCode, size int) *BatchResult {
	return &BatchResult{
		Action:    action,
		Decisions: make([]Decision, 0, size),
	}
}

func (b *BatchResult) add(d Decision) {
	b.Decisions = append(b.Decisions, d)
}

// Qualified returns the records that passed the precondition, once per workflow id,
// in the order they were first seen.
func (b *BatchResult) Qualified() []*model.WorkflowStatusRecord {
	seen := make(map[string]bool)
	records := make([]*model.WorkflowStatusRecord, 0)
	for _, d := range b.Decisions {
		if d.Outcome != QUALIFIED || seen[d.WorkflowId] {
			continue
		}
		seen[d.WorkflowId] = true
		records = append(records, d.Record)
	}
	return records
}

func (b *BatchResult) Count(outcome Outcome) int {
	n := 0
	for _, d := range b.Decisions {
		if d.Outcome == outcome {
			n++
		}
	}
	return n
}

func (b *BatchResult) AllQualified() bool {
	return b.Count(QUALIFIED) == len(b.Decisions)
}

func (b *BatchResult) WorkflowIds() []string {
	ids := make([]string, 0, len(b.Decisions))
	for _, d := range b.Decisions {
		ids = append(ids, d.WorkflowId)
	}
	return ids
}

package api

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Submission ---

// SubmissionInput is the body of save_submission and submit.
type SubmissionInput struct {
	Submission string `json:"submission"`
}

// SaveResult acknowledges a persisted draft.
type SaveResult struct {
	Saved bool `json:"saved"`
}

// SubmitResult describes a recorded final submission.
type SubmitResult struct {
	SubmissionUUID string `json:"submission_uuid"`
	AttemptNumber  int    `json:"attempt_number"`
}

// --- Workflow ---

// Workflow statuses reported by workflow_info.
const (
	WorkflowPeer    = "peer"
	WorkflowSelf    = "self"
	WorkflowWaiting = "waiting"
	WorkflowDone    = "done"
)

// WorkflowStep is one assessment step and whether it is finished.
type WorkflowStep struct {
	Name        string `json:"name"`
	SubmitterOK bool   `json:"submitter_completed"`
}

// WorkflowInfo is the learner's progress through the assessment steps.
type WorkflowInfo struct {
	Status         string         `json:"status"`
	SubmissionUUID string         `json:"submission_uuid,omitempty"`
	Steps          []WorkflowStep `json:"steps"`
}

package api

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// CodeDuplicateSubmission is the error code the submit handler returns
// when the learner already has a final submission on record.
const CodeDuplicateSubmission = "ENOMULTI"

// SubmitErrorKind classifies a failed final submission.
type SubmitErrorKind int

const (
	// SubmitErrorOther is any failure except a duplicate submission.
	SubmitErrorOther SubmitErrorKind = iota
	// SubmitErrorDuplicate means a final submission already exists.
	SubmitErrorDuplicate
)

func (k SubmitErrorKind) String() string {
	if k == SubmitErrorDuplicate {
		return "duplicate-submission"
	}
	return "other"
}

// SubmitError is returned by SubmitFinal. Message may be empty.
type SubmitError struct {
	Kind    SubmitErrorKind
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "submit failed: " + e.Kind.String()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// RenderPartial fetches the rendered HTML for one workflow step view.
func (c *Client) RenderPartial(view string) (string, error) {
	view = strings.TrimSpace(view)
	if view == "" {
		return "", fmt.Errorf("view name is required")
	}
	data, err := c.get("/handler/render_" + url.PathEscape(view))
	if err != nil {
		return "", fmt.Errorf("render %s: %w", view, err)
	}
	return string(data), nil
}

// SaveDraft persists the draft text without submitting it.
func (c *Client) SaveDraft(text string) error {
	data, err := c.post("/handler/save_submission", SubmissionInput{Submission: text})
	if err != nil {
		return err
	}
	result, err := decodeOne[SaveResult](data)
	if err != nil {
		return err
	}
	if !result.Saved {
		return fmt.Errorf("draft was not saved")
	}
	return nil
}

// SubmitFinal records text as the learner's final response. Every failure
// is a *SubmitError.
func (c *Client) SubmitFinal(text string) (*SubmitResult, error) {
	data, err := c.post("/handler/submit", SubmissionInput{Submission: text})
	if err != nil {
		return nil, classifySubmitError(err)
	}
	result, err := decodeOne[SubmitResult](data)
	if err != nil {
		return nil, classifySubmitError(err)
	}
	return result, nil
}

// WorkflowInfo fetches the learner's progress through the assessment steps.
func (c *Client) WorkflowInfo() (*WorkflowInfo, error) {
	data, err := c.get("/handler/workflow_info")
	if err != nil {
		return nil, err
	}
	return decodeOne[WorkflowInfo](data)
}

func classifySubmitError(err error) *SubmitError {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return &SubmitError{Kind: SubmitErrorOther, Message: err.Error(), Err: err}
	}
	kind := SubmitErrorOther
	if apiErr.Code == CodeDuplicateSubmission {
		kind = SubmitErrorDuplicate
	}
	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" && apiErr.Code == "" && apiErr.Body != "" {
		msg = apiErr.Error()
	}
	return &SubmitError{Kind: kind, Message: msg, Err: err}
}

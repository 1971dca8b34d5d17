package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "ora_testkey")
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

func errorResponse(code, message string) []byte {
	b, _ := json.Marshal(map[string]any{"error": map[string]any{"code": code, "message": message}})
	return b
}

func TestRenderPartial(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/handler/render_response", r.URL.Path)
		assert.Equal(t, "Bearer ora_testkey", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<textarea class="submission__answer__value">hi</textarea>`))
	})

	html, err := client.RenderPartial("response")
	require.NoError(t, err)
	assert.Contains(t, html, "submission__answer__value")
}

func TestRenderPartialRequiresView(t *testing.T) {
	client := NewClient("http://unused.test", "")
	_, err := client.RenderPartial("  ")
	require.Error(t, err)
}

func TestRenderPartialServerError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	})

	_, err := client.RenderPartial("response")
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, err.Error(), "HTTP 500: boom")
}

func TestSaveDraftSendsSubmission(t *testing.T) {
	var got SubmissionInput
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/handler/save_submission", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(jsonResponse(map[string]any{"saved": true}))
	})

	require.NoError(t, client.SaveDraft("Hello"))
	assert.Equal(t, "Hello", got.Submission)
}

func TestSaveDraftNotSaved(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(jsonResponse(map[string]any{"saved": false}))
	})

	err := client.SaveDraft("Hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not saved")
}

func TestSaveDraftEnvelopeError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write(errorResponse("EBADFORM", "submission too long"))
	})

	err := client.SaveDraft("Hello")
	require.Error(t, err)
	assert.Equal(t, "EBADFORM: submission too long", err.Error())
}

func TestSubmitFinalSuccess(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/handler/submit", r.URL.Path)
		w.Write(jsonResponse(map[string]any{"submission_uuid": "sub-1", "attempt_number": 1}))
	})

	result, err := client.SubmitFinal("final")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", result.SubmissionUUID)
	assert.Equal(t, 1, result.AttemptNumber)
}

func TestSubmitFinalDuplicate(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write(errorResponse(CodeDuplicateSubmission, "already submitted"))
	})

	_, err := client.SubmitFinal("final")
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, SubmitErrorDuplicate, subErr.Kind)
	assert.Equal(t, "already submitted", subErr.Message)
}

func TestSubmitFinalOtherWithMessage(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write(errorResponse("EUNKNOWN", "server busy"))
	})

	_, err := client.SubmitFinal("final")
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, SubmitErrorOther, subErr.Kind)
	assert.Equal(t, "server busy", subErr.Message)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "EUNKNOWN", apiErr.Code)
}

func TestSubmitFinalOtherWithoutMessage(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write(errorResponse("EUNKNOWN", ""))
	})

	_, err := client.SubmitFinal("final")
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, SubmitErrorOther, subErr.Kind)
	assert.Empty(t, subErr.Message)
}

func TestSubmitFinalDetailString(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"not enrolled"}`))
	})

	_, err := client.SubmitFinal("final")
	var subErr *SubmitError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "not enrolled", subErr.Message)
}

func TestWorkflowInfo(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/handler/workflow_info", r.URL.Path)
		w.Write(jsonResponse(map[string]any{
			"status":          WorkflowPeer,
			"submission_uuid": "sub-1",
			"steps": []map[string]any{
				{"name": "peer", "submitter_completed": false},
				{"name": "self", "submitter_completed": false},
			},
		}))
	})

	info, err := client.WorkflowInfo()
	require.NoError(t, err)
	assert.Equal(t, WorkflowPeer, info.Status)
	assert.Len(t, info.Steps, 2)
	assert.Equal(t, "peer", info.Steps[0].Name)
}

func TestSubmitErrorKindString(t *testing.T) {
	assert.Equal(t, "duplicate-submission", SubmitErrorDuplicate.String())
	assert.Equal(t, "other", SubmitErrorOther.String())
}

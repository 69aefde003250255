package shared_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/srs-api/internal/api/shared"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	shared.RespondWithJSON(rr, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rr := httptest.NewRecorder()

	shared.RespondWithError(rr, req, http.StatusNotFound, "Item not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Item not found", resp.Error)
	assert.NotEmpty(t, resp.TraceID)
}

func TestRespondWithErrorAndLogHidesDetails(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()

	internal := errors.New("pq: connect postgres://u:secret@db:5432/srs refused")
	shared.RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "Something went wrong", internal)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	// The raw error never reaches the client.
	body := rr.Body.String()
	assert.NotContains(t, body, "secret")
	assert.NotContains(t, body, "postgres://")

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "Something went wrong", resp.Error)
}

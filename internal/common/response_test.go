package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONSetsContentTypeAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"ok": "yes"})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"ok":"yes"}`, rec.Body.String())
}

func TestJSONErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusUnprocessableEntity, "UNKNOWN_WEIGHT", "weight cannot be mapped", map[string]string{"field": "weight"})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope struct {
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "UNKNOWN_WEIGHT", envelope.Error.Code)
	require.Equal(t, "weight cannot be mapped", envelope.Error.Message)
	require.NotNil(t, envelope.Error.Details)
}

func TestJSONErrorOmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusNotFound, "NOT_FOUND", "application not found", nil)

	require.NotContains(t, rec.Body.String(), "details")
}

func TestRenderErrorUsesAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := NewAppError("RATE_LIMITED", "too many requests", http.StatusTooManyRequests, nil)
	RenderError(rec, err)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestRenderErrorUnwrapsWrappedAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	inner := NewAppError("CONFLICT", "already exists", http.StatusConflict, nil)
	RenderError(rec, fmt.Errorf("persist application: %w", inner))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "CONFLICT")
}

func TestRenderErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RenderError(rec, errors.New("pq: connection reset"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "INTERNAL")
	require.NotContains(t, rec.Body.String(), "connection reset")
}

func TestAppErrorMessageFallsBackWithoutCause(t *testing.T) {
	err := &AppError{Code: "X", Message: "stored premium missing"}
	require.Equal(t, "stored premium missing", err.Error())
	require.True(t, IsAppError(err))
	require.False(t, IsAppError(errors.New("plain")))
}

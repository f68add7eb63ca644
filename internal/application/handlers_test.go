package application_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/hellaspet/backend-insurance/internal/application"
)

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (chi.Router, *memStore) {
	t.Helper()
	svc, store, _ := newTestService(t)
	h := &application.Handler{Svc: svc, Validate: validator.New()}
	r := chi.NewRouter()
	r.Post("/quotes", h.Quote)
	h.Mount(r)
	return r, store
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	return envelope.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

const createBody = `{
	"firstName": "Ada",
	"lastName": "Klein",
	"email": "ada@example.com",
	"program": "silver",
	"billingFrequency": "annual",
	"pet": {"name": "Rex", "species": "dog", "weight": "10_25"}
}`

func TestQuoteEndpointReturnsPremium(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/quotes",
		`{"species":"dog","program":"silver","weight":"10_25"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeData(t, rec)
	premium, ok := data["premium"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "207.20", premium["annual"])
	require.Equal(t, "108.78", premium["semester"])
	require.Equal(t, "annual", data["frequency"])
}

func TestQuoteEndpointRejectsUnknownWeight(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/quotes",
		`{"species":"dog","program":"silver","weight":"heavy"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "UNKNOWN_WEIGHT", decodeError(t, rec).Error.Code)
}

func TestQuoteEndpointValidatesPayload(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/quotes", `{"program":"silver","weight":"10_25"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION", decodeError(t, rec).Error.Code)
}

func TestCreateEndpointPersistsApplication(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/applications", createBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	data := decodeData(t, rec)
	require.Regexp(t, `^HPI\d{5}$`, data["applicationNumber"])
	premium, ok := data["primaryPremium"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "207.20", premium["annual"])
}

func TestGetEndpointRejectsMalformedID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/applications/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decodeError(t, rec).Error.Code)
}

func TestGetEndpointReturnsNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/applications/6f1f4ac0-9ab0-4e5f-b2f0-3a4a9c0e21d7", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "NOT_FOUND", decodeError(t, rec).Error.Code)
}

func TestBreakdownEndpointHonoursQueryParams(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeData(t, doJSON(t, r, http.MethodPost, "/applications", createBody))
	id, ok := created["id"].(string)
	require.True(t, ok)

	rec := doJSON(t, r, http.MethodGet, "/applications/"+id+"/breakdown?frequency=annual&slot=primary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, "207.20", data["total"])

	rec = doJSON(t, r, http.MethodGet, "/applications/"+id+"/breakdown?slot=third", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "UNKNOWN_ENUM", decodeError(t, rec).Error.Code)
}

func TestContractEndpointAcceptsAndMarksGenerated(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeData(t, doJSON(t, r, http.MethodPost, "/applications", createBody))
	id, ok := created["id"].(string)
	require.True(t, ok)

	rec := doJSON(t, r, http.MethodPost, "/applications/"+id+"/contract", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	data := decodeData(t, rec)
	require.Equal(t, true, data["contractGenerated"])
}

func TestRepairEndpointReportsPerSlot(t *testing.T) {
	r, _ := newTestRouter(t)

	created := decodeData(t, doJSON(t, r, http.MethodPost, "/applications", createBody))
	id, ok := created["id"].(string)
	require.True(t, ok)

	rec := doJSON(t, r, http.MethodPost, "/applications/"+id+"/repair", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	require.Equal(t, false, envelope.Data[0]["repaired"])
}

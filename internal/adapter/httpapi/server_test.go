package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscoffee/pos-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockService struct {
	all       []domain.Pos
	byID      map[int64]domain.Pos
	upserted  domain.Pos
	upsertErr error
	importPos domain.Pos
	importErr error
	cleared   bool
}

func (m *mockService) GetAll(_ context.Context) ([]domain.Pos, error) {
	return m.all, nil
}

func (m *mockService) GetByID(_ context.Context, id int64) (domain.Pos, error) {
	pos, ok := m.byID[id]
	if !ok {
		return domain.Pos{}, &domain.PosNotFoundError{ID: id}
	}
	return pos, nil
}

func (m *mockService) Upsert(_ context.Context, pos domain.Pos) (domain.Pos, error) {
	if m.upsertErr != nil {
		return domain.Pos{}, m.upsertErr
	}
	m.upserted = pos
	if pos.ID == 0 {
		pos.ID = 1
	}
	return pos, nil
}

func (m *mockService) Clear(_ context.Context) error {
	m.cleared = true
	return nil
}

func (m *mockService) ImportFromOsmNode(_ context.Context, _ int64) (domain.Pos, error) {
	if m.importErr != nil {
		return domain.Pos{}, m.importErr
	}
	return m.importPos, nil
}

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(svc PosService, ready ReadinessChecker) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(":0", svc, ready, logger)
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func validPos() domain.Pos {
	return domain.Pos{
		Name:        "Rada",
		Type:        domain.PosTypeCafe,
		Campus:      domain.CampusAltstadt,
		Street:      "Untere Straße",
		HouseNumber: "21",
		PostalCode:  69117,
		City:        "Heidelberg",
	}
}

// --- tests ---

func TestGetAll(t *testing.T) {
	svc := &mockService{all: []domain.Pos{{ID: 1, Name: "Rada"}}}
	srv := newTestServer(svc, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/pos", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var all []domain.Pos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Rada", all[0].Name)
}

func TestGetAll_EmptyListNotNull(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/pos", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetByID(t *testing.T) {
	svc := &mockService{byID: map[int64]domain.Pos{7: {ID: 7, Name: "Rada"}}}
	srv := newTestServer(svc, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/pos/7", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var pos domain.Pos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))
	assert.Equal(t, int64(7), pos.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	srv := newTestServer(&mockService{byID: map[int64]domain.Pos{}}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/pos/99", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "POS_NOT_FOUND", decodeAPIError(t, rec).Code)
}

func TestUpsert_Create(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc, &mockReadiness{})

	body, err := json.Marshal(validPos())
	require.NoError(t, err)
	rec := doRequest(t, srv, http.MethodPut, "/api/v1/pos", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var saved domain.Pos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, int64(1), saved.ID)
}

func TestUpsert_Update(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc, &mockReadiness{})

	pos := validPos()
	pos.ID = 5
	body, err := json.Marshal(pos)
	require.NoError(t, err)
	rec := doRequest(t, srv, http.MethodPut, "/api/v1/pos", body)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpsert_InvalidBody(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/pos", []byte("{not json"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeAPIError(t, rec).Code)
}

func TestUpsert_RejectsOpenEnumValues(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	pos := validPos()
	pos.Type = "KIOSK"
	body, err := json.Marshal(pos)
	require.NoError(t, err)
	rec := doRequest(t, srv, http.MethodPut, "/api/v1/pos", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpsert_DuplicateNameConflict(t *testing.T) {
	svc := &mockService{upsertErr: &domain.DuplicateNameError{Name: "Rada"}}
	srv := newTestServer(svc, &mockReadiness{})

	body, err := json.Marshal(validPos())
	require.NoError(t, err)
	rec := doRequest(t, srv, http.MethodPut, "/api/v1/pos", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	apiErr := decodeAPIError(t, rec)
	assert.Equal(t, "DUPLICATE_POS_NAME", apiErr.Code)
	assert.Contains(t, apiErr.Message, "Rada")
}

func TestClear(t *testing.T) {
	svc := &mockService{}
	srv := newTestServer(svc, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodDelete, "/api/v1/pos", nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, svc.cleared)
}

func TestImport_Success(t *testing.T) {
	svc := &mockService{importPos: domain.Pos{ID: 1, Name: "Rada", Type: domain.PosTypeCafe}}
	srv := newTestServer(svc, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/pos/import/5589879349", nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	var pos domain.Pos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))
	assert.Equal(t, "Rada", pos.Name)
}

func TestImport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectStatus int
		expectCode   string
	}{
		{"node not found", &domain.NodeNotFoundError{NodeID: 1}, http.StatusNotFound, "OSM_NODE_NOT_FOUND"},
		{"missing fields", &domain.MissingFieldsError{NodeID: 1}, http.StatusUnprocessableEntity, "OSM_NODE_MISSING_FIELDS"},
		{"fetch unavailable", &domain.FetchUnavailableError{NodeID: 1, Err: errors.New("boom")}, http.StatusBadGateway, "OSM_UNAVAILABLE"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{importErr: tt.err}
			srv := newTestServer(svc, &mockReadiness{})

			rec := doRequest(t, srv, http.MethodPost, "/api/v1/pos/import/1", nil)

			require.Equal(t, tt.expectStatus, rec.Code)
			assert.Equal(t, tt.expectCode, decodeAPIError(t, rec).Code)
		})
	}
}

func TestImport_NonNumericNodeID(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/pos/import/abc", nil)

	// The route pattern only matches numeric IDs.
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&mockService{}, &mockReadiness{})

		rec := doRequest(t, srv, http.MethodGet, "/readyz", nil)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&mockService{}, &mockReadiness{err: errors.New("mongo unreachable")})

		rec := doRequest(t, srv, http.MethodGet, "/readyz", nil)

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "mongo unreachable")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&mockService{}, &mockReadiness{})

	rec := doRequest(t, srv, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
}

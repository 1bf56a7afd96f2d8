package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/searchops/internal/ctxutil"
	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAllocations struct {
	err          error
	lastSync     primary.SyncRequest
	lastAllocate primary.AllocateResourceRequest
	lastOperator string
}

func (s *stubAllocations) SuggestAllocation(ctx context.Context, premiseID string) (*primary.Suggestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &primary.Suggestion{PremiseID: premiseID, SuggestedIDs: []string{"RES-001"}, Warnings: []string{"Need 1 more vehicle(s)"}}, nil
}

func (s *stubAllocations) AutoAssign(ctx context.Context) (*primary.AutoAssignResult, error) {
	s.lastOperator = ctxutil.OperatorFromContext(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &primary.AutoAssignResult{Processed: 2, Created: 5, Attempts: 1}, nil
}

func (s *stubAllocations) SyncAllocations(ctx context.Context, req primary.SyncRequest) (*primary.SyncResult, error) {
	s.lastSync = req
	if s.err != nil {
		return nil, s.err
	}
	return &primary.SyncResult{PremiseID: req.PremiseID, Added: req.Add, Removed: req.Remove}, nil
}

func (s *stubAllocations) AllocateResource(ctx context.Context, req primary.AllocateResourceRequest) (*primary.SyncResult, error) {
	s.lastAllocate = req
	if s.err != nil {
		return nil, s.err
	}
	return &primary.SyncResult{PremiseID: req.PremiseID, Added: []string{req.ResourceID}}, nil
}

func (s *stubAllocations) ReleasePremise(ctx context.Context, premiseID string) (*primary.SyncResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &primary.SyncResult{PremiseID: premiseID, Removed: []string{"RES-001"}}, nil
}

func (s *stubAllocations) GetTeam(ctx context.Context, premiseID string) (*primary.Team, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &primary.Team{PremiseID: premiseID, Members: []*primary.Resource{{ID: "RES-001"}}}, nil
}

type stubPremises struct {
	err         error
	lastDecided string
	lastReq     primary.Requirements
}

func (s *stubPremises) CreatePremise(ctx context.Context, req primary.CreatePremiseRequest) (*primary.Premise, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &primary.Premise{ID: "PREM-001", SearchID: req.SearchID, Name: req.Name, Nature: req.Nature}, nil
}

func (s *stubPremises) GetPremise(ctx context.Context, premiseID string) (*primary.Premise, error) {
	if premiseID == "PREM-404" {
		return nil, errs.NotFound("premise %s", premiseID)
	}
	return &primary.Premise{ID: premiseID, DecisionStatus: s.lastDecided}, nil
}

func (s *stubPremises) ListPremises(ctx context.Context, filters primary.PremiseFilters) ([]*primary.Premise, error) {
	return []*primary.Premise{{ID: "PREM-001", SearchID: filters.SearchID}}, nil
}

func (s *stubPremises) SetRecceStatus(ctx context.Context, premiseID, status string) error {
	return s.err
}

func (s *stubPremises) SetDecision(ctx context.Context, premiseID, decision string) error {
	if s.err != nil {
		return s.err
	}
	s.lastDecided = decision
	return nil
}

func (s *stubPremises) SetAllocationStatus(ctx context.Context, premiseID, status string) error {
	return s.err
}

func (s *stubPremises) UpdateRequirements(ctx context.Context, premiseID string, req primary.Requirements) error {
	s.lastReq = req
	return s.err
}

type stubResources struct {
	lastFilters primary.ResourceFilters
}

func (s *stubResources) CreateResource(ctx context.Context, req primary.CreateResourceRequest) (*primary.Resource, error) {
	if req.Type == "" {
		return nil, errs.Validation("type is required")
	}
	return &primary.Resource{ID: "RES-015", Type: req.Type, Name: req.Name, Status: "AVAILABLE"}, nil
}

func (s *stubResources) GetResource(ctx context.Context, resourceID string) (*primary.Resource, error) {
	return &primary.Resource{ID: resourceID}, nil
}

func (s *stubResources) ListResources(ctx context.Context, filters primary.ResourceFilters) ([]*primary.Resource, error) {
	s.lastFilters = filters
	return []*primary.Resource{{ID: "RES-001", Type: "OFFICIAL", Status: "AVAILABLE"}}, nil
}

func (s *stubResources) SetAvailability(ctx context.Context, resourceID string, available bool) error {
	return nil
}

type testServer struct {
	router      *gin.Engine
	allocations *stubAllocations
	premises    *stubPremises
	resources   *stubResources
}

func newTestServer() *testServer {
	ts := &testServer{
		allocations: &stubAllocations{},
		premises:    &stubPremises{},
		resources:   &stubResources{},
	}
	h := NewHandlers(ts.allocations, ts.premises, ts.resources, zap.NewNop())
	ts.router = NewRouter(h, prometheus.NewRegistry())
	return ts
}

func (ts *testServer) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/healthz", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "searchops_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	h := NewHandlers(&stubAllocations{}, &stubPremises{}, &stubResources{}, zap.NewNop())
	router := NewRouter(h, reg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "searchops_test_total 1")
}

func TestListResources_PassesFilters(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/resources?type=OFFICIAL&status=AVAILABLE&searchId=SRCH-001", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, primary.ResourceFilters{Type: "OFFICIAL", Status: "AVAILABLE", SearchID: "SRCH-001"}, ts.resources.lastFilters)
	assert.Contains(t, w.Body.String(), `"id":"RES-001"`)
}

func TestCreateResource(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/resources", `{"type":"WITNESS","name":"Asha","gender":"FEMALE"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/api/resources", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = ts.do(http.MethodPost, "/api/resources", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePremise(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/premises", `{"searchId":"SRCH-001","name":"Warehouse","nature":"INDUSTRIAL"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var p primary.Premise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "PREM-001", p.ID)
	assert.Equal(t, "INDUSTRIAL", p.Nature)
}

func TestGetPremise_NotFound(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/premises/PREM-404", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NOT_FOUND", resp.Code)
}

func TestSuggestionAndTeam(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodGet, "/api/premises/PREM-001/suggestion", "")
	require.Equal(t, http.StatusOK, w.Code)
	var s primary.Suggestion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, []string{"RES-001"}, s.SuggestedIDs)

	w = ts.do(http.MethodGet, "/api/premises/PREM-001/team", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"premiseId":"PREM-001"`)
}

func TestSync_UsesPathPremise(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/premises/PREM-002/allocations/sync", `{"add":["RES-001"],"remove":["RES-004"]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, primary.SyncRequest{PremiseID: "PREM-002", Add: []string{"RES-001"}, Remove: []string{"RES-004"}}, ts.allocations.lastSync)
}

func TestAllocate(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/premises/PREM-001/allocations", `{"resourceId":"RES-009"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "RES-009", ts.allocations.lastAllocate.ResourceID)

	w = ts.do(http.MethodPost, "/api/premises/PREM-001/allocations", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRelease(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodDelete, "/api/premises/PREM-001/allocations", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":["RES-001"]`)
}

func TestDecisionReturnsPremise(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/premises/PREM-001/decision", `{"decision":"APPROVED"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var p primary.Premise
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "APPROVED", p.DecisionStatus)
}

func TestStatusEndpoints_RequireBody(t *testing.T) {
	ts := newTestServer()

	for _, path := range []string{"recce", "decision", "allocation-status"} {
		w := ts.do(http.MethodPost, "/api/premises/PREM-001/"+path, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestRequirements(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPut, "/api/premises/PREM-001/requirements", `{"maleWitness":2,"crpfTeamSize":6,"crpfMaleCount":4,"crpfFemaleCount":2,"vehicles":1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, primary.Requirements{MaleWitness: 2, CrpfTeamSize: 6, CrpfMaleCount: 4, CrpfFemaleCount: 2, Vehicles: 1}, ts.premises.lastReq)
}

func TestAutoAssign_RecordsOperator(t *testing.T) {
	ts := newTestServer()

	w := ts.do(http.MethodPost, "/api/auto-assign", "", OperatorHeader, "inspector.rao")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inspector.rao", ts.allocations.lastOperator)
	var res primary.AutoAssignResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 5, res.Created)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.Validation("premise PREM-001 is not approved"), http.StatusUnprocessableEntity},
		{"conflict", errs.Conflict("1 of 2 resource(s) are no longer AVAILABLE"), http.StatusConflict},
		{"transient", errs.Transient(context.DeadlineExceeded, "begin transaction"), http.StatusServiceUnavailable},
		{"not found", errs.NotFound("premise PREM-009"), http.StatusNotFound},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer()
			ts.allocations.err = tt.err

			w := ts.do(http.MethodPost, "/api/premises/PREM-001/allocations/sync", `{"add":["RES-001"]}`)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), zap.NewNop())
	}()

	cancel()
	assert.NoError(t, <-done)
}

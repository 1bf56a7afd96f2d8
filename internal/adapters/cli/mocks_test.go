package cli

import (
	"context"

	"github.com/example/searchops/internal/ports/primary"
)

// mockAllocationService implements primary.AllocationService for testing
type mockAllocationService struct {
	suggestFn  func(ctx context.Context, premiseID string) (*primary.Suggestion, error)
	autoFn     func(ctx context.Context) (*primary.AutoAssignResult, error)
	syncFn     func(ctx context.Context, req primary.SyncRequest) (*primary.SyncResult, error)
	allocateFn func(ctx context.Context, req primary.AllocateResourceRequest) (*primary.SyncResult, error)
	releaseFn  func(ctx context.Context, premiseID string) (*primary.SyncResult, error)
	teamFn     func(ctx context.Context, premiseID string) (*primary.Team, error)

	// Track calls for verification
	syncCalls       []primary.SyncRequest
	lastAllocateReq primary.AllocateResourceRequest
}

func (m *mockAllocationService) SuggestAllocation(ctx context.Context, premiseID string) (*primary.Suggestion, error) {
	if m.suggestFn != nil {
		return m.suggestFn(ctx, premiseID)
	}
	return &primary.Suggestion{PremiseID: premiseID}, nil
}

func (m *mockAllocationService) AutoAssign(ctx context.Context) (*primary.AutoAssignResult, error) {
	if m.autoFn != nil {
		return m.autoFn(ctx)
	}
	return &primary.AutoAssignResult{NoEligiblePremises: true}, nil
}

func (m *mockAllocationService) SyncAllocations(ctx context.Context, req primary.SyncRequest) (*primary.SyncResult, error) {
	m.syncCalls = append(m.syncCalls, req)
	if m.syncFn != nil {
		return m.syncFn(ctx, req)
	}
	return &primary.SyncResult{PremiseID: req.PremiseID, Added: req.Add, Removed: req.Remove}, nil
}

func (m *mockAllocationService) AllocateResource(ctx context.Context, req primary.AllocateResourceRequest) (*primary.SyncResult, error) {
	m.lastAllocateReq = req
	if m.allocateFn != nil {
		return m.allocateFn(ctx, req)
	}
	return &primary.SyncResult{PremiseID: req.PremiseID, Added: []string{req.ResourceID}}, nil
}

func (m *mockAllocationService) ReleasePremise(ctx context.Context, premiseID string) (*primary.SyncResult, error) {
	if m.releaseFn != nil {
		return m.releaseFn(ctx, premiseID)
	}
	return &primary.SyncResult{PremiseID: premiseID}, nil
}

func (m *mockAllocationService) GetTeam(ctx context.Context, premiseID string) (*primary.Team, error) {
	if m.teamFn != nil {
		return m.teamFn(ctx, premiseID)
	}
	return &primary.Team{PremiseID: premiseID}, nil
}

// mockPremiseService implements primary.PremiseService for testing
type mockPremiseService struct {
	getFn  func(ctx context.Context, premiseID string) (*primary.Premise, error)
	listFn func(ctx context.Context, filters primary.PremiseFilters) ([]*primary.Premise, error)
	setFn  func(track, premiseID, value string) error

	lastCreateReq        primary.CreatePremiseRequest
	lastRequirements     primary.Requirements
	lastTrack, lastValue string
}

func (m *mockPremiseService) CreatePremise(ctx context.Context, req primary.CreatePremiseRequest) (*primary.Premise, error) {
	m.lastCreateReq = req
	return &primary.Premise{ID: "PREM-001", SearchID: req.SearchID, Name: req.Name}, nil
}

func (m *mockPremiseService) GetPremise(ctx context.Context, premiseID string) (*primary.Premise, error) {
	if m.getFn != nil {
		return m.getFn(ctx, premiseID)
	}
	return &primary.Premise{ID: premiseID, Name: "Test Premise", Nature: "OFFICE", RecceStatus: "PENDING", DecisionStatus: "PENDING", AllocationStatus: "PENDING"}, nil
}

func (m *mockPremiseService) ListPremises(ctx context.Context, filters primary.PremiseFilters) ([]*primary.Premise, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return []*primary.Premise{}, nil
}

func (m *mockPremiseService) set(track, premiseID, value string) error {
	m.lastTrack, m.lastValue = track, value
	if m.setFn != nil {
		return m.setFn(track, premiseID, value)
	}
	return nil
}

func (m *mockPremiseService) SetRecceStatus(ctx context.Context, premiseID, status string) error {
	return m.set("recce", premiseID, status)
}

func (m *mockPremiseService) SetDecision(ctx context.Context, premiseID, decision string) error {
	return m.set("decision", premiseID, decision)
}

func (m *mockPremiseService) SetAllocationStatus(ctx context.Context, premiseID, status string) error {
	return m.set("allocation", premiseID, status)
}

func (m *mockPremiseService) UpdateRequirements(ctx context.Context, premiseID string, req primary.Requirements) error {
	m.lastRequirements = req
	return m.set("requirements", premiseID, "")
}

// mockResourceService implements primary.ResourceService and primary.RosterService for testing
type mockResourceService struct {
	listFn      func(ctx context.Context, filters primary.ResourceFilters) ([]*primary.Resource, error)
	setAvailFn  func(ctx context.Context, resourceID string, available bool) error
	importFn    func(ctx context.Context, roster primary.Roster) (*primary.ImportResult, error)
	lastCreate  primary.CreateResourceRequest
	lastAvail   *bool
	lastFilters primary.ResourceFilters
}

func (m *mockResourceService) CreateResource(ctx context.Context, req primary.CreateResourceRequest) (*primary.Resource, error) {
	m.lastCreate = req
	return &primary.Resource{ID: "RES-001", Type: req.Type, Name: req.Name, Status: "AVAILABLE"}, nil
}

func (m *mockResourceService) GetResource(ctx context.Context, resourceID string) (*primary.Resource, error) {
	return &primary.Resource{ID: resourceID}, nil
}

func (m *mockResourceService) ListResources(ctx context.Context, filters primary.ResourceFilters) ([]*primary.Resource, error) {
	m.lastFilters = filters
	if m.listFn != nil {
		return m.listFn(ctx, filters)
	}
	return []*primary.Resource{}, nil
}

func (m *mockResourceService) SetAvailability(ctx context.Context, resourceID string, available bool) error {
	m.lastAvail = &available
	if m.setAvailFn != nil {
		return m.setAvailFn(ctx, resourceID, available)
	}
	return nil
}

func (m *mockResourceService) ImportRoster(ctx context.Context, roster primary.Roster) (*primary.ImportResult, error) {
	if m.importFn != nil {
		return m.importFn(ctx, roster)
	}
	res := &primary.ImportResult{}
	for i := range roster.Resources {
		res.ResourceIDs = append(res.ResourceIDs, "RES-00"+string(rune('1'+i)))
	}
	for i := range roster.Premises {
		res.PremiseIDs = append(res.PremiseIDs, "PREM-00"+string(rune('1'+i)))
	}
	return res, nil
}

package app

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/secondary"
)

// fakeStore is an in-memory store shared by the fake repositories. Run takes
// a copy of the state and restores it when fn fails.
type fakeStore struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	resources   map[string]*secondary.ResourceRecord
	premises    map[string]*secondary.PremiseRecord
	allocations []*secondary.AllocationRecord
	seq         int

	// afterPoolList runs once after the first AVAILABLE pool listing, outside
	// any transaction. Tests use it to change state between snapshot and commit.
	afterPoolList func(s *fakeStore)
	listErr       error
	// listErrOnce clears listErr after it has been returned once.
	listErrOnce bool
	poolLists   int
}

type txMarker struct{}

func newFakeStore() *fakeStore {
	return &fakeStore{
		resources: make(map[string]*secondary.ResourceRecord),
		premises:  make(map[string]*secondary.PremiseRecord),
	}
}

func (s *fakeStore) addResource(r *secondary.ResourceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Status == "" {
		r.Status = "AVAILABLE"
	}
	s.resources[r.ID] = r
}

func (s *fakeStore) addPremise(p *secondary.PremiseRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.premises[p.ID] = p
}

func (s *fakeStore) status(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resources[id].Status
}

func (s *fakeStore) allocated(premiseID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, a := range s.allocations {
		if a.PremiseID == premiseID {
			ids = append(ids, a.ResourceID)
		}
	}
	sort.Strings(ids)
	return ids
}

type fakeState struct {
	resources   map[string]secondary.ResourceRecord
	premises    map[string]secondary.PremiseRecord
	allocations []secondary.AllocationRecord
}

func (s *fakeStore) snapshot() fakeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := fakeState{
		resources: make(map[string]secondary.ResourceRecord, len(s.resources)),
		premises:  make(map[string]secondary.PremiseRecord, len(s.premises)),
	}
	for id, r := range s.resources {
		st.resources[id] = *r
	}
	for id, p := range s.premises {
		cp := *p
		if p.Requirements != nil {
			req := *p.Requirements
			cp.Requirements = &req
		}
		st.premises[id] = cp
	}
	for _, a := range s.allocations {
		st.allocations = append(st.allocations, *a)
	}
	return st
}

func (s *fakeStore) restore(st fakeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = make(map[string]*secondary.ResourceRecord, len(st.resources))
	for id, r := range st.resources {
		rc := r
		s.resources[id] = &rc
	}
	s.premises = make(map[string]*secondary.PremiseRecord, len(st.premises))
	for id, p := range st.premises {
		pc := p
		s.premises[id] = &pc
	}
	s.allocations = nil
	for _, a := range st.allocations {
		ac := a
		s.allocations = append(s.allocations, &ac)
	}
}

// ============================================================================
// Transactor
// ============================================================================

type fakeTx struct{ s *fakeStore }

func (t fakeTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	saved := t.s.snapshot()
	if err := fn(context.WithValue(ctx, txMarker{}, true)); err != nil {
		t.s.restore(saved)
		return err
	}
	return nil
}

// ============================================================================
// Resources
// ============================================================================

type fakeResources struct{ s *fakeStore }

func (f fakeResources) Create(ctx context.Context, r *secondary.ResourceRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.resources[r.ID]; ok {
		return errs.Conflict("resource %s already exists", r.ID)
	}
	cp := *r
	if cp.Status == "" {
		cp.Status = "AVAILABLE"
	}
	f.s.resources[r.ID] = &cp
	return nil
}

func (f fakeResources) GetByID(ctx context.Context, id string) (*secondary.ResourceRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	r, ok := f.s.resources[id]
	if !ok {
		return nil, errs.NotFound("resource %s", id)
	}
	cp := *r
	return &cp, nil
}

func (f fakeResources) GetByIDs(ctx context.Context, ids []string) ([]*secondary.ResourceRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*secondary.ResourceRecord
	for _, id := range ids {
		if r, ok := f.s.resources[id]; ok {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeResources) List(ctx context.Context, filters secondary.ResourceFilters) ([]*secondary.ResourceRecord, error) {
	f.s.mu.Lock()
	if filters.Status == "AVAILABLE" {
		f.s.poolLists++
	}
	if err := f.s.listErr; err != nil {
		if f.s.listErrOnce {
			f.s.listErr = nil
		}
		f.s.mu.Unlock()
		return nil, err
	}
	var out []*secondary.ResourceRecord
	for _, r := range f.s.resources {
		if filters.Type != "" && r.Type != filters.Type {
			continue
		}
		if filters.Status != "" && r.Status != filters.Status {
			continue
		}
		if filters.SearchID != "" && r.SearchID != "" && r.SearchID != filters.SearchID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	hook := f.s.afterPoolList
	if filters.Status == "AVAILABLE" {
		f.s.afterPoolList = nil
	} else {
		hook = nil
	}
	f.s.mu.Unlock()

	if hook != nil {
		hook(f.s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeResources) UpdateStatusBatch(ctx context.Context, ids []string, status string, from ...string) (int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	n := 0
	for _, id := range ids {
		r, ok := f.s.resources[id]
		if !ok {
			continue
		}
		if len(from) > 0 && !slices.Contains(from, r.Status) {
			continue
		}
		r.Status = status
		n++
	}
	return n, nil
}

func (f fakeResources) GetNextID(ctx context.Context) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for i := len(f.s.resources) + 1; ; i++ {
		id := fmt.Sprintf("RES-%03d", i)
		if _, ok := f.s.resources[id]; !ok {
			return id, nil
		}
	}
}

// ============================================================================
// Premises
// ============================================================================

type fakePremises struct{ s *fakeStore }

func (f fakePremises) Create(ctx context.Context, p *secondary.PremiseRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.premises[p.ID]; ok {
		return errs.Conflict("premise %s already exists", p.ID)
	}
	cp := *p
	f.s.premises[p.ID] = &cp
	return nil
}

func (f fakePremises) GetByID(ctx context.Context, id string) (*secondary.PremiseRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.premises[id]
	if !ok {
		return nil, errs.NotFound("premise %s", id)
	}
	cp := *p
	return &cp, nil
}

func (f fakePremises) List(ctx context.Context, filters secondary.PremiseFilters) ([]*secondary.PremiseRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*secondary.PremiseRecord
	for _, p := range f.s.premises {
		if filters.SearchID != "" && p.SearchID != filters.SearchID {
			continue
		}
		if filters.DecisionStatus != "" && p.DecisionStatus != filters.DecisionStatus {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakePremises) ListEligibleForAllocation(ctx context.Context) ([]*secondary.PremiseRecord, error) {
	return f.List(ctx, secondary.PremiseFilters{DecisionStatus: "APPROVED"})
}

func (f fakePremises) update(id string, fn func(p *secondary.PremiseRecord)) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	p, ok := f.s.premises[id]
	if !ok {
		return errs.NotFound("premise %s", id)
	}
	fn(p)
	return nil
}

func (f fakePremises) UpdateRecceStatus(ctx context.Context, id, status string) error {
	return f.update(id, func(p *secondary.PremiseRecord) { p.RecceStatus = status })
}

func (f fakePremises) UpdateDecisionStatus(ctx context.Context, id, status string) error {
	return f.update(id, func(p *secondary.PremiseRecord) { p.DecisionStatus = status })
}

func (f fakePremises) UpdateAllocationStatus(ctx context.Context, id, status string) error {
	return f.update(id, func(p *secondary.PremiseRecord) { p.AllocationStatus = status })
}

func (f fakePremises) UpdateRequirements(ctx context.Context, id string, req secondary.RequirementsRecord) error {
	return f.update(id, func(p *secondary.PremiseRecord) { p.Requirements = &req })
}

func (f fakePremises) GetNextID(ctx context.Context) (string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return fmt.Sprintf("PREM-%03d", len(f.s.premises)+1), nil
}

// ============================================================================
// Ledger
// ============================================================================

type fakeLedger struct{ s *fakeStore }

func (f fakeLedger) Create(ctx context.Context, records []secondary.AllocationRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, rec := range records {
		for _, a := range f.s.allocations {
			if a.ResourceID == rec.ResourceID {
				return errs.Conflict("resource %s is already allocated", rec.ResourceID)
			}
		}
		f.s.seq++
		cp := rec
		cp.ID = fmt.Sprintf("alloc-%d", f.s.seq)
		f.s.allocations = append(f.s.allocations, &cp)
	}
	return nil
}

func (f fakeLedger) DeleteByResourceIDs(ctx context.Context, premiseID string, resourceIDs []string) ([]string, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var kept []*secondary.AllocationRecord
	var deleted []string
	for _, a := range f.s.allocations {
		if a.PremiseID == premiseID && slices.Contains(resourceIDs, a.ResourceID) {
			deleted = append(deleted, a.ResourceID)
			continue
		}
		kept = append(kept, a)
	}
	f.s.allocations = kept
	return deleted, nil
}

func (f fakeLedger) ListByPremise(ctx context.Context, premiseID string) ([]*secondary.AllocationRecord, error) {
	return f.ListByPremises(ctx, []string{premiseID})
}

func (f fakeLedger) ListByPremises(ctx context.Context, premiseIDs []string) ([]*secondary.AllocationRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []*secondary.AllocationRecord
	for _, a := range f.s.allocations {
		if slices.Contains(premiseIDs, a.PremiseID) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f fakeLedger) CountByPremise(ctx context.Context, premiseID string) (int, error) {
	list, _ := f.ListByPremise(ctx, premiseID)
	return len(list), nil
}

var (
	_ secondary.Transactor         = fakeTx{}
	_ secondary.ResourceRepository = fakeResources{}
	_ secondary.PremiseRepository  = fakePremises{}
	_ secondary.AllocationLedger   = fakeLedger{}
)

// ============================================================================
// Fixtures
// ============================================================================

const testSearch = "SRCH-001"

func official(id, gender, rank string) *secondary.ResourceRecord {
	return &secondary.ResourceRecord{ID: id, Type: "OFFICIAL", Name: id, Gender: gender, Rank: rank}
}

func witness(id, gender string) *secondary.ResourceRecord {
	return &secondary.ResourceRecord{ID: id, Type: "WITNESS", Name: id, Gender: gender}
}

func driver(id, gender string) *secondary.ResourceRecord {
	return &secondary.ResourceRecord{ID: id, Type: "DRIVER", Name: id, Gender: gender}
}

func squad(id string, male, female int) *secondary.ResourceRecord {
	return &secondary.ResourceRecord{ID: id, Type: "CRPF", Name: id, CrpfMaleCount: male, CrpfFemaleCount: female}
}

func approved(id, nature string, req *secondary.RequirementsRecord) *secondary.PremiseRecord {
	return &secondary.PremiseRecord{
		ID: id, SearchID: testSearch, Name: id, Nature: nature, Requirements: req,
		RecceStatus: "COMPLETED", DecisionStatus: "APPROVED", AllocationStatus: "PENDING",
	}
}

// harness wires every service over one fake store.
type harness struct {
	store      *fakeStore
	metrics    *Metrics
	allocation *AllocationServiceImpl
	premises   *PremiseServiceImpl
	resources  *ResourceServiceImpl
	roster     *RosterServiceImpl
}

func newHarness(opts AllocationOptions) *harness {
	store := newFakeStore()
	logger := zap.NewNop()
	metrics := NewMetrics(nil)
	res, prem, ledger, tx := fakeResources{store}, fakePremises{store}, fakeLedger{store}, fakeTx{store}

	executor := NewEffectExecutor(res, ledger, logger, metrics)
	resourceSvc := NewResourceService(res, tx, logger)
	premiseSvc := NewPremiseService(prem, ledger, tx, logger)
	return &harness{
		store:      store,
		metrics:    metrics,
		allocation: NewAllocationService(res, prem, ledger, tx, executor, opts, logger, metrics),
		premises:   premiseSvc,
		resources:  resourceSvc,
		roster:     NewRosterService(resourceSvc, premiseSvc, tx, logger),
	}
}

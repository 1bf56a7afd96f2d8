package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/searchops/internal/core/allocation"
	"github.com/example/searchops/internal/core/effects"
	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/core/resource"
	"github.com/example/searchops/internal/ctxutil"
	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/ports/secondary"
)

// AllocationOptions carries the configurable allocation policy.
type AllocationOptions struct {
	Policy allocation.Policy
	// DriverGenders lists the genders a driver may have for manual allocation.
	// Empty allows any gender.
	DriverGenders []string
	// AutoAssignRetries bounds how many times a conflicting auto-assign run
	// is re-planned from a fresh snapshot.
	AutoAssignRetries int
}

// DefaultAllocationOptions returns the stock policy.
func DefaultAllocationOptions() AllocationOptions {
	return AllocationOptions{
		Policy:            allocation.DefaultPolicy(),
		DriverGenders:     []string{string(resource.GenderMale)},
		AutoAssignRetries: 3,
	}
}

// AllocationServiceImpl implements the AllocationService interface.
type AllocationServiceImpl struct {
	resources secondary.ResourceRepository
	premises  secondary.PremiseRepository
	ledger    secondary.AllocationLedger
	tx        secondary.Transactor
	executor  EffectExecutor
	opts      AllocationOptions
	logger    *zap.Logger
	metrics   *Metrics

	// bulkMu serialises auto-assign runs within this process. Runs from other
	// processes are caught by the conditional status flip in the executor.
	bulkMu sync.Mutex
}

// NewAllocationService creates a new AllocationService with injected dependencies.
func NewAllocationService(
	resources secondary.ResourceRepository,
	premises secondary.PremiseRepository,
	ledger secondary.AllocationLedger,
	tx secondary.Transactor,
	executor EffectExecutor,
	opts AllocationOptions,
	logger *zap.Logger,
	metrics *Metrics,
) *AllocationServiceImpl {
	if opts.AutoAssignRetries < 1 {
		opts.AutoAssignRetries = 1
	}
	return &AllocationServiceImpl{
		resources: resources,
		premises:  premises,
		ledger:    ledger,
		tx:        tx,
		executor:  executor,
		opts:      opts,
		logger:    logger,
		metrics:   metrics,
	}
}

// SuggestAllocation proposes additions for one premise without committing.
func (s *AllocationServiceImpl) SuggestAllocation(ctx context.Context, premiseID string) (*primary.Suggestion, error) {
	rec, err := s.premises.GetByID(ctx, premiseID)
	if err != nil {
		return nil, err
	}
	p := recordToPremise(rec)

	if p.Requirements == nil {
		return nil, errs.NotFound("requirements for premise %s", premiseID)
	}
	if err := premise.CanAllocate(premise.AllocateContext{
		PremiseID:      p.ID,
		DecisionStatus: p.DecisionStatus,
	}).Error(); err != nil {
		return nil, err
	}

	assigned, pool, err := s.loadTeamAndPool(ctx, p)
	if err != nil {
		return nil, err
	}

	sug := allocation.Suggest(allocation.SuggestInput{
		Premise:  p,
		Assigned: assigned,
		Pool:     pool,
		Policy:   s.opts.Policy,
	})

	s.metrics.SuggestionWarnings.Add(float64(len(sug.Warnings)))
	s.logger.Info("suggested allocation",
		zap.String("premise_id", p.ID),
		zap.Int("suggested", len(sug.SuggestedIDs)),
		zap.Int("warnings", len(sug.Warnings)))

	return &primary.Suggestion{
		PremiseID:    sug.PremiseID,
		SuggestedIDs: nonNil(sug.SuggestedIDs),
		Suggested:    resourcesToPrimary(sug.Suggested),
		Warnings:     nonNil(sug.Warnings),
	}, nil
}

// loadTeamAndPool fetches the current team of p and the AVAILABLE pool of
// its search concurrently.
func (s *AllocationServiceImpl) loadTeamAndPool(ctx context.Context, p premise.Premise) ([]resource.Resource, []resource.Resource, error) {
	var assigned, pool []resource.Resource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		team, err := s.teamOf(gctx, p.ID)
		assigned = team
		return err
	})
	g.Go(func() error {
		records, err := s.resources.List(gctx, secondary.ResourceFilters{
			Status:   string(resource.StatusAvailable),
			SearchID: p.SearchID,
		})
		if err != nil {
			return fmt.Errorf("failed to load resource pool: %w", err)
		}
		pool = recordsToResources(records)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return assigned, pool, nil
}

// teamOf returns the resources currently allocated to a premise.
func (s *AllocationServiceImpl) teamOf(ctx context.Context, premiseID string) ([]resource.Resource, error) {
	allocs, err := s.ledger.ListByPremise(ctx, premiseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocations: %w", err)
	}
	records, err := s.resources.GetByIDs(ctx, resourceIDsOf(allocs))
	if err != nil {
		return nil, fmt.Errorf("failed to load allocated resources: %w", err)
	}
	return recordsToResources(records), nil
}

// AutoAssign plans and commits allocations for every approved premise. A run
// that loses a race is re-planned from a fresh snapshot. Transient store
// errors are returned to the caller unretried.
func (s *AllocationServiceImpl) AutoAssign(ctx context.Context) (*primary.AutoAssignResult, error) {
	s.bulkMu.Lock()
	defer s.bulkMu.Unlock()

	start := time.Now()
	defer func() { s.metrics.AutoAssignDuration.Observe(time.Since(start).Seconds()) }()

	for attempt := 1; ; attempt++ {
		result, err := s.autoAssignOnce(ctx)
		if err == nil {
			result.Attempts = attempt
			s.logger.Info("auto-assign complete",
				zap.String("operator", ctxutil.OperatorFromContext(ctx)),
				zap.Int("processed", result.Processed),
				zap.Int("created", result.Created),
				zap.Int("without_requirements", len(result.WithoutRequirements)),
				zap.Int("attempts", attempt))
			return result, nil
		}

		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
		s.metrics.Conflicts.WithLabelValues("auto_assign").Inc()
		if attempt >= s.opts.AutoAssignRetries || ctx.Err() != nil {
			return nil, err
		}
		s.logger.Warn("auto-assign lost a race; re-planning",
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
}

func (s *AllocationServiceImpl) autoAssignOnce(ctx context.Context) (*primary.AutoAssignResult, error) {
	eligible, err := s.premises.ListEligibleForAllocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible premises: %w", err)
	}
	if len(eligible) == 0 {
		return &primary.AutoAssignResult{NoEligiblePremises: true}, nil
	}

	premiseIDs := make([]string, len(eligible))
	for i, p := range eligible {
		premiseIDs[i] = p.ID
	}

	var (
		allocs []*secondary.AllocationRecord
		pool   []resource.Resource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		allocs, err = s.ledger.ListByPremises(gctx, premiseIDs)
		if err != nil {
			return fmt.Errorf("failed to load allocations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		records, err := s.resources.List(gctx, secondary.ResourceFilters{Status: string(resource.StatusAvailable)})
		if err != nil {
			return fmt.Errorf("failed to load resource pool: %w", err)
		}
		pool = recordsToResources(records)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	assignedRecords, err := s.resources.GetByIDs(ctx, resourceIDsOf(allocs))
	if err != nil {
		return nil, fmt.Errorf("failed to load allocated resources: %w", err)
	}
	byID := make(map[string]resource.Resource, len(assignedRecords))
	for _, r := range assignedRecords {
		byID[r.ID] = recordToResource(r)
	}

	states := make([]allocation.PremiseState, len(eligible))
	for i, p := range eligible {
		states[i].Premise = recordToPremise(p)
	}
	index := make(map[string]int, len(eligible))
	for i, p := range eligible {
		index[p.ID] = i
	}
	for _, a := range allocs {
		if r, ok := byID[a.ResourceID]; ok {
			st := &states[index[a.PremiseID]]
			st.Assigned = append(st.Assigned, r)
		}
	}

	plan := allocation.PlanAutoAssign(allocation.AutoAssignInput{
		Premises: states,
		Pool:     pool,
		Policy:   s.opts.Policy,
	})

	effs := effects.FromPairs(effects.SourceAuto, plan.Pairs())
	if len(effs) > 0 {
		if err := s.tx.Run(ctx, func(ctx context.Context) error {
			return s.executor.Execute(ctx, effs)
		}); err != nil {
			return nil, err
		}
	}

	return &primary.AutoAssignResult{
		Processed:           plan.Processed,
		Created:             plan.Claims.Len(),
		WithoutRequirements: plan.WithoutRequirements,
		Warnings:            plan.Warnings,
	}, nil
}

// SyncAllocations removes and adds allocations of one premise atomically.
func (s *AllocationServiceImpl) SyncAllocations(ctx context.Context, req primary.SyncRequest) (*primary.SyncResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	return s.sync(ctx, req.PremiseID, req.Add, req.Remove, effects.SourceSync)
}

// AllocateResource allocates a single resource after the driver-gender policy check.
func (s *AllocationServiceImpl) AllocateResource(ctx context.Context, req primary.AllocateResourceRequest) (*primary.SyncResult, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	rec, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if rec.Type == string(resource.TypeDriver) && len(s.opts.DriverGenders) > 0 &&
		!slices.Contains(s.opts.DriverGenders, rec.Gender) {
		return nil, errs.Validation("driver %s has gender %s; drivers must be one of %v",
			rec.ID, rec.Gender, s.opts.DriverGenders)
	}

	return s.sync(ctx, req.PremiseID, []string{req.ResourceID}, nil, effects.SourceManual)
}

// ReleasePremise removes every allocation of a premise.
func (s *AllocationServiceImpl) ReleasePremise(ctx context.Context, premiseID string) (*primary.SyncResult, error) {
	var result *primary.SyncResult
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		allocs, err := s.ledger.ListByPremise(ctx, premiseID)
		if err != nil {
			return err
		}
		result, err = s.sync(ctx, premiseID, nil, resourceIDsOf(allocs), effects.SourceSync)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// sync re-validates and commits one premise delta inside a transaction:
// releases first, then additions. Any failure leaves the store unchanged.
func (s *AllocationServiceImpl) sync(ctx context.Context, premiseID string, add, remove []string, source string) (*primary.SyncResult, error) {
	add = dedupe(add)
	remove = dedupe(remove)
	for _, id := range add {
		if slices.Contains(remove, id) {
			return nil, errs.Validation("resource %s is both added and removed", id)
		}
	}

	result := &primary.SyncResult{PremiseID: premiseID, Added: []string{}, Removed: []string{}}
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		rec, err := s.premises.GetByID(ctx, premiseID)
		if err != nil {
			return err
		}
		p := recordToPremise(rec)

		if len(add) > 0 {
			if err := premise.CanAllocate(premise.AllocateContext{
				PremiseID:      p.ID,
				DecisionStatus: p.DecisionStatus,
			}).Error(); err != nil {
				return err
			}
			if err := s.checkAdditions(ctx, p, add); err != nil {
				return err
			}
		}

		if len(remove) > 0 {
			current, err := s.ledger.ListByPremise(ctx, premiseID)
			if err != nil {
				return err
			}
			held := resourceIDsOf(current)
			for _, id := range remove {
				if slices.Contains(held, id) {
					result.Removed = append(result.Removed, id)
				}
			}
		}

		if err := s.executor.Execute(ctx, effects.SyncPlan(premiseID, add, remove, source)); err != nil {
			return err
		}
		result.Added = append(result.Added, add...)
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			s.metrics.Conflicts.WithLabelValues(source).Inc()
		}
		return nil, err
	}

	s.logger.Info("synced allocations",
		zap.String("operator", ctxutil.OperatorFromContext(ctx)),
		zap.String("premise_id", premiseID),
		zap.Strings("added", result.Added),
		zap.Strings("removed", result.Removed),
		zap.String("source", source))
	return result, nil
}

// checkAdditions re-reads the resources to add: each must exist, be usable
// by the premise's search, and still be AVAILABLE.
func (s *AllocationServiceImpl) checkAdditions(ctx context.Context, p premise.Premise, add []string) error {
	records, err := s.resources.GetByIDs(ctx, add)
	if err != nil {
		return err
	}
	found := make(map[string]resource.Resource, len(records))
	for _, r := range records {
		found[r.ID] = recordToResource(r)
	}

	var taken []string
	for _, id := range add {
		r, ok := found[id]
		if !ok {
			return errs.NotFound("resource %s", id)
		}
		if !r.EligibleFor(p.SearchID) {
			return errs.Validation("resource %s belongs to search %s, not %s", id, r.SearchID, p.SearchID)
		}
		if r.Status != resource.StatusAvailable {
			taken = append(taken, fmt.Sprintf("%s (%s)", id, r.Status))
		}
	}
	if len(taken) > 0 {
		return errs.Conflict("resource(s) no longer AVAILABLE: %v", taken)
	}
	return nil
}

// GetTeam returns the resources allocated to a premise and its shortfalls.
func (s *AllocationServiceImpl) GetTeam(ctx context.Context, premiseID string) (*primary.Team, error) {
	rec, err := s.premises.GetByID(ctx, premiseID)
	if err != nil {
		return nil, err
	}
	p := recordToPremise(rec)

	team, err := s.teamOf(ctx, premiseID)
	if err != nil {
		return nil, err
	}

	return &primary.Team{
		PremiseID: premiseID,
		Members:   resourcesToPrimary(groupByType(team)),
		Warnings:  nonNil(allocation.Warnings(p, allocation.TallyOf(team), s.opts.Policy)),
	}, nil
}

// groupByType orders a team officials first (by rank), then witnesses,
// drivers and squads.
func groupByType(team []resource.Resource) []resource.Resource {
	out := make([]resource.Resource, 0, len(team))
	officials := resource.Filter(team, resource.OfType(resource.TypeOfficial))
	resource.SortOfficialsByRank(officials)
	out = append(out, officials...)
	for _, t := range []resource.Type{resource.TypeWitness, resource.TypeDriver, resource.TypeCRPF} {
		out = append(out, resource.Filter(team, resource.OfType(t))...)
	}
	return out
}

func resourceIDsOf(allocs []*secondary.AllocationRecord) []string {
	ids := make([]string, len(allocs))
	for i, a := range allocs {
		ids[i] = a.ResourceID
	}
	return ids
}

func dedupe(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

var _ primary.AllocationService = (*AllocationServiceImpl)(nil)

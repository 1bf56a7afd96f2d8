package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/searchops/internal/core/premise"
	"github.com/example/searchops/internal/ctxutil"
	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/ports/secondary"
)

// PremiseServiceImpl implements the PremiseService interface.
type PremiseServiceImpl struct {
	premises secondary.PremiseRepository
	ledger   secondary.AllocationLedger
	tx       secondary.Transactor
	logger   *zap.Logger
}

// NewPremiseService creates a new PremiseService with injected dependencies.
func NewPremiseService(
	premises secondary.PremiseRepository,
	ledger secondary.AllocationLedger,
	tx secondary.Transactor,
	logger *zap.Logger,
) *PremiseServiceImpl {
	return &PremiseServiceImpl{
		premises: premises,
		ledger:   ledger,
		tx:       tx,
		logger:   logger,
	}
}

// CreatePremise creates a new premise with every status track PENDING.
func (s *PremiseServiceImpl) CreatePremise(ctx context.Context, req primary.CreatePremiseRequest) (*primary.Premise, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.Requirements != nil {
		return nil, errs.Validation("requirements can only be set once the premise is APPROVED")
	}

	var created *secondary.PremiseRecord
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		nextID, err := s.premises.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate premise ID: %w", err)
		}

		p := premise.InitialPremise(nextID, req.SearchID, req.Name, premise.Nature(req.Nature))
		record := &secondary.PremiseRecord{
			ID:               p.ID,
			SearchID:         p.SearchID,
			Name:             p.Name,
			Address:          req.Address,
			Nature:           string(p.Nature),
			RecceStatus:      string(p.RecceStatus),
			DecisionStatus:   string(p.DecisionStatus),
			AllocationStatus: string(p.AllocationStatus),
		}

		if err := s.premises.Create(ctx, record); err != nil {
			return err
		}

		created, err = s.premises.GetByID(ctx, nextID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created premise", zap.String("premise_id", created.ID), zap.String("search_id", created.SearchID))
	return recordToPrimaryPremise(created), nil
}

// GetPremise retrieves a premise by ID.
func (s *PremiseServiceImpl) GetPremise(ctx context.Context, premiseID string) (*primary.Premise, error) {
	record, err := s.premises.GetByID(ctx, premiseID)
	if err != nil {
		return nil, err
	}
	return recordToPrimaryPremise(record), nil
}

// ListPremises lists premises with optional filters.
func (s *PremiseServiceImpl) ListPremises(ctx context.Context, filters primary.PremiseFilters) ([]*primary.Premise, error) {
	records, err := s.premises.List(ctx, secondary.PremiseFilters{
		SearchID:       filters.SearchID,
		DecisionStatus: filters.DecisionStatus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list premises: %w", err)
	}

	premises := make([]*primary.Premise, len(records))
	for i, r := range records {
		premises[i] = recordToPrimaryPremise(r)
	}
	return premises, nil
}

// SetRecceStatus moves the recce track.
func (s *PremiseServiceImpl) SetRecceStatus(ctx context.Context, premiseID, status string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		record, err := s.premises.GetByID(ctx, premiseID)
		if err != nil {
			return err
		}

		if err := premise.CanTransitionRecce(premise.RecceTransitionContext{
			PremiseID: premiseID,
			Current:   premise.RecceStatus(record.RecceStatus),
			Target:    premise.RecceStatus(status),
		}).Error(); err != nil {
			return err
		}

		if err := s.premises.UpdateRecceStatus(ctx, premiseID, status); err != nil {
			return err
		}
		s.logger.Info("recce status changed",
			zap.String("operator", ctxutil.OperatorFromContext(ctx)),
			zap.String("premise_id", premiseID),
			zap.String("from", record.RecceStatus),
			zap.String("to", status))
		return nil
	})
}

// SetDecision moves the decision track.
func (s *PremiseServiceImpl) SetDecision(ctx context.Context, premiseID, decision string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		record, err := s.premises.GetByID(ctx, premiseID)
		if err != nil {
			return err
		}

		active, err := s.ledger.CountByPremise(ctx, premiseID)
		if err != nil {
			return fmt.Errorf("failed to count allocations: %w", err)
		}

		if err := premise.CanDecide(premise.DecisionContext{
			PremiseID:         premiseID,
			RecceStatus:       premise.RecceStatus(record.RecceStatus),
			Current:           premise.DecisionStatus(record.DecisionStatus),
			Target:            premise.DecisionStatus(decision),
			ActiveAllocations: active,
		}).Error(); err != nil {
			return err
		}

		if err := s.premises.UpdateDecisionStatus(ctx, premiseID, decision); err != nil {
			return err
		}
		s.logger.Info("decision changed",
			zap.String("operator", ctxutil.OperatorFromContext(ctx)),
			zap.String("premise_id", premiseID),
			zap.String("from", record.DecisionStatus),
			zap.String("to", decision))
		return nil
	})
}

// SetAllocationStatus sets the manual completion marker.
func (s *PremiseServiceImpl) SetAllocationStatus(ctx context.Context, premiseID, status string) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		record, err := s.premises.GetByID(ctx, premiseID)
		if err != nil {
			return err
		}

		if err := premise.CanSetAllocationStatus(premise.AllocationStatusContext{
			PremiseID:      premiseID,
			DecisionStatus: premise.DecisionStatus(record.DecisionStatus),
			Target:         premise.AllocationStatus(status),
		}).Error(); err != nil {
			return err
		}

		return s.premises.UpdateAllocationStatus(ctx, premiseID, status)
	})
}

// UpdateRequirements replaces the requisition of an approved premise.
func (s *PremiseServiceImpl) UpdateRequirements(ctx context.Context, premiseID string, req primary.Requirements) error {
	if err := validateStruct(req); err != nil {
		return err
	}

	return s.tx.Run(ctx, func(ctx context.Context) error {
		record, err := s.premises.GetByID(ctx, premiseID)
		if err != nil {
			return err
		}

		if err := premise.CanEditRequirements(premise.EditRequirementsContext{
			PremiseID:      premiseID,
			DecisionStatus: premise.DecisionStatus(record.DecisionStatus),
		}).Error(); err != nil {
			return err
		}

		if err := s.premises.UpdateRequirements(ctx, premiseID, requirementsToRecord(req)); err != nil {
			return err
		}
		s.logger.Info("requirements updated", zap.String("premise_id", premiseID))
		return nil
	})
}

var _ primary.PremiseService = (*PremiseServiceImpl)(nil)

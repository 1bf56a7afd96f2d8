package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/ports/secondary"
)

// RosterServiceImpl implements the RosterService interface on top of the
// resource and premise services, sharing one transaction.
type RosterServiceImpl struct {
	resources *ResourceServiceImpl
	premises  *PremiseServiceImpl
	tx        secondary.Transactor
	logger    *zap.Logger
}

// NewRosterService creates a new RosterService with injected dependencies.
func NewRosterService(
	resources *ResourceServiceImpl,
	premises *PremiseServiceImpl,
	tx secondary.Transactor,
	logger *zap.Logger,
) *RosterServiceImpl {
	return &RosterServiceImpl{
		resources: resources,
		premises:  premises,
		tx:        tx,
		logger:    logger,
	}
}

// ImportRoster creates every resource and premise of a roster. Either all
// entries are created or none are.
func (s *RosterServiceImpl) ImportRoster(ctx context.Context, roster primary.Roster) (*primary.ImportResult, error) {
	if err := validateStruct(roster); err != nil {
		return nil, err
	}

	result := &primary.ImportResult{}
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		for _, req := range roster.Resources {
			created, err := s.resources.CreateResource(ctx, req)
			if err != nil {
				return err
			}
			result.ResourceIDs = append(result.ResourceIDs, created.ID)
		}
		for _, req := range roster.Premises {
			created, err := s.premises.CreatePremise(ctx, req)
			if err != nil {
				return err
			}
			result.PremiseIDs = append(result.PremiseIDs, created.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("imported roster",
		zap.Int("resources", len(result.ResourceIDs)),
		zap.Int("premises", len(result.PremiseIDs)))
	return result, nil
}

var _ primary.RosterService = (*RosterServiceImpl)(nil)

package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/searchops/internal/core/resource"
	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/primary"
	"github.com/example/searchops/internal/ports/secondary"
)

// ResourceServiceImpl implements the ResourceService interface.
type ResourceServiceImpl struct {
	resources secondary.ResourceRepository
	tx        secondary.Transactor
	logger    *zap.Logger
}

// NewResourceService creates a new ResourceService with injected dependencies.
func NewResourceService(
	resources secondary.ResourceRepository,
	tx secondary.Transactor,
	logger *zap.Logger,
) *ResourceServiceImpl {
	return &ResourceServiceImpl{
		resources: resources,
		tx:        tx,
		logger:    logger,
	}
}

// CreateResource registers a new resource.
func (s *ResourceServiceImpl) CreateResource(ctx context.Context, req primary.CreateResourceRequest) (*primary.Resource, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	var created resource.Resource
	err := s.tx.Run(ctx, func(ctx context.Context) error {
		nextID, err := s.resources.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate resource ID: %w", err)
		}

		created = requestToResource(nextID, req)
		if err := created.Validate(); err != nil {
			return errs.Validation("%v", err)
		}

		return s.resources.Create(ctx, resourceToRecord(created))
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("created resource",
		zap.String("resource_id", created.ID),
		zap.String("type", string(created.Type())))
	return resourceToPrimary(created), nil
}

// GetResource retrieves a resource by ID.
func (s *ResourceServiceImpl) GetResource(ctx context.Context, resourceID string) (*primary.Resource, error) {
	record, err := s.resources.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return resourceToPrimary(recordToResource(record)), nil
}

// ListResources lists resources with optional filters.
func (s *ResourceServiceImpl) ListResources(ctx context.Context, filters primary.ResourceFilters) ([]*primary.Resource, error) {
	if filters.Type != "" {
		if _, err := resource.ParseType(filters.Type); err != nil {
			return nil, errs.Validation("%v", err)
		}
	}
	if filters.Status != "" {
		if _, err := resource.ParseStatus(filters.Status); err != nil {
			return nil, errs.Validation("%v", err)
		}
	}

	records, err := s.resources.List(ctx, secondary.ResourceFilters{
		Type:     filters.Type,
		Status:   filters.Status,
		SearchID: filters.SearchID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resourcesToPrimary(recordsToResources(records)), nil
}

// SetAvailability toggles a resource between AVAILABLE and UNAVAILABLE.
func (s *ResourceServiceImpl) SetAvailability(ctx context.Context, resourceID string, available bool) error {
	target := resource.StatusUnavailable
	if available {
		target = resource.StatusAvailable
	}

	return s.tx.Run(ctx, func(ctx context.Context) error {
		record, err := s.resources.GetByID(ctx, resourceID)
		if err != nil {
			return err
		}
		if record.Status == string(resource.StatusAssigned) {
			return errs.Validation("resource %s is ASSIGNED; release its allocation first", resourceID)
		}
		if record.Status == string(target) {
			return nil
		}

		changed, err := s.resources.UpdateStatusBatch(ctx, []string{resourceID}, string(target),
			string(resource.StatusAvailable), string(resource.StatusUnavailable))
		if err != nil {
			return err
		}
		if changed == 0 {
			return errs.Conflict("resource %s changed status concurrently", resourceID)
		}

		s.logger.Info("resource availability changed",
			zap.String("resource_id", resourceID),
			zap.String("status", string(target)))
		return nil
	})
}

var _ primary.ResourceService = (*ResourceServiceImpl)(nil)

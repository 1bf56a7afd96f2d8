// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/example/searchops/internal/core/effects"
	"github.com/example/searchops/internal/core/resource"
	"github.com/example/searchops/internal/errs"
	"github.com/example/searchops/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place allocation I/O happens.
// Callers run Execute inside a transaction so a failing effect undoes the
// ones before it.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor applies allocation effects to the repositories.
type DefaultEffectExecutor struct {
	resources secondary.ResourceRepository
	ledger    secondary.AllocationLedger
	logger    *zap.Logger
	metrics   *Metrics
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(
	resources secondary.ResourceRepository,
	ledger secondary.AllocationLedger,
	logger *zap.Logger,
	metrics *Metrics,
) *DefaultEffectExecutor {
	return &DefaultEffectExecutor{
		resources: resources,
		ledger:    ledger,
		logger:    logger,
		metrics:   metrics,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.AllocateEffect:
		return e.executeAllocate(ctx, typed)
	case effects.ReleaseEffect:
		return e.executeRelease(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// executeAllocate flips every resource from AVAILABLE to ASSIGNED and records
// the pairs. The flip is conditional, so a resource taken since the snapshot
// surfaces as a conflict rather than a double allocation.
func (e *DefaultEffectExecutor) executeAllocate(ctx context.Context, eff effects.AllocateEffect) error {
	if len(eff.ResourceIDs) == 0 {
		return nil
	}

	changed, err := e.resources.UpdateStatusBatch(ctx, eff.ResourceIDs,
		string(resource.StatusAssigned), string(resource.StatusAvailable))
	if err != nil {
		return err
	}
	if changed != len(eff.ResourceIDs) {
		return errs.Conflict("%d of %d resource(s) for premise %s are no longer AVAILABLE",
			len(eff.ResourceIDs)-changed, len(eff.ResourceIDs), eff.PremiseID)
	}

	records := make([]secondary.AllocationRecord, len(eff.ResourceIDs))
	for i, id := range eff.ResourceIDs {
		records[i] = secondary.AllocationRecord{PremiseID: eff.PremiseID, ResourceID: id, Source: eff.Source}
	}
	if err := e.ledger.Create(ctx, records); err != nil {
		return err
	}

	e.metrics.AllocationsCreated.WithLabelValues(eff.Source).Add(float64(len(records)))
	e.logger.Debug("allocated resources",
		zap.String("premise_id", eff.PremiseID),
		zap.Strings("resource_ids", eff.ResourceIDs),
		zap.String("source", eff.Source))
	return nil
}

// executeRelease deletes the pairs and returns the released resources to the
// pool. Resources not allocated to the premise are left alone.
func (e *DefaultEffectExecutor) executeRelease(ctx context.Context, eff effects.ReleaseEffect) error {
	deleted, err := e.ledger.DeleteByResourceIDs(ctx, eff.PremiseID, eff.ResourceIDs)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return nil
	}
	sort.Strings(deleted)

	if _, err := e.resources.UpdateStatusBatch(ctx, deleted, string(resource.StatusAvailable)); err != nil {
		return err
	}

	e.metrics.AllocationsReleased.Add(float64(len(deleted)))
	e.logger.Debug("released resources",
		zap.String("premise_id", eff.PremiseID),
		zap.Strings("resource_ids", deleted))
	return nil
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}

var _ EffectExecutor = (*DefaultEffectExecutor)(nil)

package shipments

import (
	"context"
	"go.uber.org/zap"
	"invoice-service/core"
	"invoice-service/shipments/models"
	"invoice-service/shipments/repositories"
	"time"
)

// Service manages shipments. Every call runs under the request timeout and is
// traced by the logging aspect when one is configured.
type Service struct {
	logger  *zap.Logger
	aspect  *core.LoggingAspect
	repo    repositories.Store
	timeout time.Duration
}

func NewService(logger *zap.Logger, aspect *core.LoggingAspect, repo repositories.Store, timeout time.Duration) *Service {
	return &Service{
		logger:  logger.Named("shipments"),
		aspect:  aspect,
		repo:    repo,
		timeout: timeout,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Save persists a new shipment.
func (s *Service) Save(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error) {
	s.logger.Debug("Request to save Shipment", zap.Object("shipment", shipment))

	return core.Around(s.aspect, "ShipmentService.Save", func() (*models.Shipment, error) {
		if err := shipment.Validate(); err != nil {
			return nil, err
		}
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		if err := s.repo.Create(ctx, shipment); err != nil {
			return nil, err
		}
		return shipment, nil
	}, shipment)
}

// Update overwrites an existing shipment.
func (s *Service) Update(ctx context.Context, shipment *models.Shipment) (*models.Shipment, error) {
	s.logger.Debug("Request to update Shipment", zap.Object("shipment", shipment))

	return core.Around(s.aspect, "ShipmentService.Update", func() (*models.Shipment, error) {
		if err := shipment.Validate(); err != nil {
			return nil, err
		}
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		if err := s.repo.Update(ctx, shipment); err != nil {
			return nil, err
		}
		return shipment, nil
	}, shipment)
}

// PartialUpdate overwrites only the non-nil fields of patch, in one transaction.
func (s *Service) PartialUpdate(ctx context.Context, patch *models.ShipmentPatch) (*models.Shipment, error) {
	s.logger.Debug("Request to partially update Shipment", zap.Int64("id", patch.ID))

	return core.Around(s.aspect, "ShipmentService.PartialUpdate", func() (*models.Shipment, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var updated *models.Shipment
		err := s.repo.Transaction(ctx, func(tx repositories.Store) error {
			existing, err := tx.FindByID(ctx, patch.ID)
			if err != nil {
				return err
			}

			patch.Apply(existing)
			if err := existing.Validate(); err != nil {
				return err
			}
			if err := tx.Update(ctx, existing); err != nil {
				return err
			}

			updated = existing
			return nil
		})
		if err != nil {
			return nil, err
		}
		return updated, nil
	}, patch)
}

// FindAll returns one page of shipments with their invoice.
func (s *Service) FindAll(ctx context.Context, page *core.Pageable) ([]models.Shipment, error) {
	s.logger.Debug("Request to get all Shipments")

	return core.Around(s.aspect, "ShipmentService.FindAll", func() ([]models.Shipment, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.FindAllBy(ctx, page)
	}, page)
}

// FindAllWithEagerRelationships returns one page of shipments with their invoice.
func (s *Service) FindAllWithEagerRelationships(ctx context.Context, page *core.Pageable) ([]models.Shipment, error) {
	return core.Around(s.aspect, "ShipmentService.FindAllWithEagerRelationships", func() ([]models.Shipment, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.FindAllWithEagerRelationships(ctx, page)
	}, page)
}

// CountAll returns the number of shipments.
func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return core.Around(s.aspect, "ShipmentService.CountAll", func() (int64, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Count(ctx)
	})
}

// FindOne returns the shipment with its invoice, or core.ErrNotFound.
func (s *Service) FindOne(ctx context.Context, id int64) (*models.Shipment, error) {
	s.logger.Debug("Request to get Shipment", zap.Int64("id", id))

	return core.Around(s.aspect, "ShipmentService.FindOne", func() (*models.Shipment, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.FindOneWithEagerRelationships(ctx, id)
	}, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return core.Around(s.aspect, "ShipmentService.Exists", func() (bool, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Exists(ctx, id)
	}, id)
}

// Delete removes the shipment. Deleting a missing shipment is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("Request to delete Shipment", zap.Int64("id", id))

	return core.AroundVoid(s.aspect, "ShipmentService.Delete", func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Delete(ctx, id)
	}, id)
}

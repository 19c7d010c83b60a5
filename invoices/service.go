package invoices

import (
	"context"
	"go.uber.org/zap"
	"invoice-service/core"
	"invoice-service/invoices/models"
	"invoice-service/invoices/repositories"
	"time"
)

// Service manages invoices.
type Service struct {
	logger  *zap.Logger
	aspect  *core.LoggingAspect
	repo    repositories.Store
	timeout time.Duration
}

func NewService(logger *zap.Logger, aspect *core.LoggingAspect, repo repositories.Store, timeout time.Duration) *Service {
	return &Service{
		logger:  logger.Named("invoices"),
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

func (s *Service) Save(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	s.logger.Debug("Request to save Invoice", zap.Object("invoice", invoice))

	return core.Around(s.aspect, "InvoiceService.Save", func() (*models.Invoice, error) {
		if err := invoice.Validate(); err != nil {
			return nil, err
		}
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		if err := s.repo.Create(ctx, invoice); err != nil {
			return nil, err
		}
		return invoice, nil
	}, invoice)
}

func (s *Service) Update(ctx context.Context, invoice *models.Invoice) (*models.Invoice, error) {
	s.logger.Debug("Request to update Invoice", zap.Object("invoice", invoice))

	return core.Around(s.aspect, "InvoiceService.Update", func() (*models.Invoice, error) {
		if err := invoice.Validate(); err != nil {
			return nil, err
		}
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		if err := s.repo.Update(ctx, invoice); err != nil {
			return nil, err
		}
		return invoice, nil
	}, invoice)
}

// PartialUpdate overwrites only the non-nil fields of patch, in one transaction.
func (s *Service) PartialUpdate(ctx context.Context, patch *models.InvoicePatch) (*models.Invoice, error) {
	s.logger.Debug("Request to partially update Invoice", zap.Int64("id", patch.ID))

	return core.Around(s.aspect, "InvoiceService.PartialUpdate", func() (*models.Invoice, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()

		var updated *models.Invoice
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

func (s *Service) FindAll(ctx context.Context, page *core.Pageable) ([]models.Invoice, error) {
	s.logger.Debug("Request to get all Invoices")

	return core.Around(s.aspect, "InvoiceService.FindAll", func() ([]models.Invoice, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.FindAll(ctx, page)
	}, page)
}

func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return core.Around(s.aspect, "InvoiceService.CountAll", func() (int64, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Count(ctx)
	})
}

func (s *Service) FindOne(ctx context.Context, id int64) (*models.Invoice, error) {
	s.logger.Debug("Request to get Invoice", zap.Int64("id", id))

	return core.Around(s.aspect, "InvoiceService.FindOne", func() (*models.Invoice, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.FindByID(ctx, id)
	}, id)
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	return core.Around(s.aspect, "InvoiceService.Exists", func() (bool, error) {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Exists(ctx, id)
	}, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("Request to delete Invoice", zap.Int64("id", id))

	return core.AroundVoid(s.aspect, "InvoiceService.Delete", func() error {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		return s.repo.Delete(ctx, id)
	}, id)
}

package repositories

import (
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"invoice-service/core"
	"invoice-service/invoices/models"
)

// Store is the persistence contract of the invoice service.
type Store interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	Update(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, id int64) (*models.Invoice, error)
	FindAll(ctx context.Context, page *core.Pageable) ([]models.Invoice, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Transaction(ctx context.Context, fn func(Store) error) error
}

var sortColumns = map[string]string{
	"id":            "id",
	"code":          "code",
	"date":          "date",
	"details":       "details",
	"status":        "status",
	"paymentMethod": "payment_method",
	"paymentDate":   "payment_date",
	"paymentAmount": "payment_amount",
}

var updatableColumns = []string{
	"code", "date", "details", "status", "payment_method", "payment_date", "payment_amount",
}

// InvoiceRepository is the repo for accessing invoices
type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invoice).Error
}

// Update overwrites every column of the invoice row.
func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	res := r.db.WithContext(ctx).Model(invoice).Select(updatableColumns).Updates(invoice)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *InvoiceRepository) FindAll(ctx context.Context, page *core.Pageable) ([]models.Invoice, error) {
	q := r.db.WithContext(ctx).Model(&models.Invoice{})
	if page != nil {
		orderBy, err := page.OrderBy(sortColumns)
		if err != nil {
			return nil, err
		}
		if orderBy != "" {
			q = q.Order(orderBy)
		}
		q = q.Limit(page.Size).Offset(page.Offset())
	}

	var invoices []models.Invoice
	err := q.Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).Count(&count).Error
	return count, err
}

func (r *InvoiceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Invoice{}, id).Error
}

// Transaction runs fn against a repository bound to a single database transaction.
func (r *InvoiceRepository) Transaction(ctx context.Context, fn func(Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&InvoiceRepository{db: tx})
	})
}

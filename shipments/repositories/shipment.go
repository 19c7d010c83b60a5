package repositories

import (
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"invoice-service/core"
	"invoice-service/shipments/models"
)

// Store is the persistence contract of the shipment service.
type Store interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	Update(ctx context.Context, shipment *models.Shipment) error
	FindByID(ctx context.Context, id int64) (*models.Shipment, error)
	FindAllBy(ctx context.Context, page *core.Pageable) ([]models.Shipment, error)
	FindAll(ctx context.Context) ([]models.Shipment, error)
	FindOneWithEagerRelationships(ctx context.Context, id int64) (*models.Shipment, error)
	FindAllWithEagerRelationships(ctx context.Context, page *core.Pageable) ([]models.Shipment, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	Transaction(ctx context.Context, fn func(Store) error) error
}

var updatableColumns = []string{"tracking_code", "date", "details", "invoice_id"}

// ShipmentRepository is the repo for accessing shipments and their invoice
type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// query runs the shipment/invoice join and maps every row.
func (r *ShipmentRepository) query(ctx context.Context, page *core.Pageable, where string, args ...any) ([]models.Shipment, error) {
	sql, err := selectQuery(page, where)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]models.Shipment, 0)
	for rows.Next() {
		shipment, err := mapRow(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}

	return shipments, rows.Err()
}

func (r *ShipmentRepository) FindAllBy(ctx context.Context, page *core.Pageable) ([]models.Shipment, error) {
	return r.query(ctx, page, "")
}

func (r *ShipmentRepository) FindAll(ctx context.Context) ([]models.Shipment, error) {
	return r.FindAllBy(ctx, nil)
}

func (r *ShipmentRepository) FindByID(ctx context.Context, id int64) (*models.Shipment, error) {
	shipments, err := r.query(ctx, nil, entityAlias+".id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		return nil, core.ErrNotFound
	}
	return &shipments[0], nil
}

// FindOneWithEagerRelationships is FindByID; the invoice is always joined.
func (r *ShipmentRepository) FindOneWithEagerRelationships(ctx context.Context, id int64) (*models.Shipment, error) {
	return r.FindByID(ctx, id)
}

func (r *ShipmentRepository) FindAllWithEagerRelationships(ctx context.Context, page *core.Pageable) ([]models.Shipment, error) {
	return r.FindAllBy(ctx, page)
}

// Create inserts the shipment row; the referenced invoice is never written.
func (r *ShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(shipment).Error
}

// Update overwrites every column of the shipment row.
func (r *ShipmentRepository) Update(ctx context.Context, shipment *models.Shipment) error {
	res := r.db.WithContext(ctx).Model(shipment).Omit(clause.Associations).Select(updatableColumns).Updates(shipment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *ShipmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shipment{}).Count(&count).Error
	return count, err
}

func (r *ShipmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shipment{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ShipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Shipment{}, id).Error
}

// Transaction runs fn against a repository bound to a single database transaction.
func (r *ShipmentRepository) Transaction(ctx context.Context, fn func(Store) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ShipmentRepository{db: tx})
	})
}

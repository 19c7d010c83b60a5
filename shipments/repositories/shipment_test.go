package repositories

import (
	"context"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"invoice-service/core"
	invoicemodels "invoice-service/invoices/models"
	"invoice-service/shipments/models"
	"regexp"
	"testing"
	"time"
)

var rowColumns = []string{
	"e_id", "e_tracking_code", "e_date", "e_details", "e_invoice_id",
	"invoice_id", "invoice_code", "invoice_date", "invoice_details", "invoice_status",
	"invoice_payment_method", "invoice_payment_date", "invoice_payment_amount",
}

const joinClause = "FROM shipment e LEFT OUTER JOIN invoice invoice ON e.invoice_id = invoice.id"

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func TestSelectQuery(t *testing.T) {
	sql, err := selectQuery(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id AS e_id, e.tracking_code AS e_tracking_code, e.date AS e_date, "+
		"e.details AS e_details, e.invoice_id AS e_invoice_id, invoice.id AS invoice_id, "+
		"invoice.code AS invoice_code, invoice.date AS invoice_date, invoice.details AS invoice_details, "+
		"invoice.status AS invoice_status, invoice.payment_method AS invoice_payment_method, "+
		"invoice.payment_date AS invoice_payment_date, invoice.payment_amount AS invoice_payment_amount "+
		joinClause, sql)

	page := core.NewPageable(2, 10, core.Order{Property: "trackingCode", Direction: core.Desc})
	sql, err = selectQuery(page, "e.id = ?")
	require.NoError(t, err)
	assert.Contains(t, sql, joinClause+" WHERE e.id = ? ORDER BY e.tracking_code DESC LIMIT 10 OFFSET 20")
}

func TestSelectQueryRejectsUnknownSort(t *testing.T) {
	_, err := selectQuery(core.NewPageable(0, 10, core.Order{Property: "invoice.code"}), "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFindByIDMapsInvoice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(joinClause + " WHERE e.id = $1")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(rowColumns).AddRow(
			int64(5), "1Z999", date, nil, int64(3),
			int64(3), "INV-3", date, "first", "PAID",
			"PAYPAL", date, "125.50",
		))

	shipment, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), shipment.ID)
	require.NotNil(t, shipment.TrackingCode)
	assert.Equal(t, "1Z999", *shipment.TrackingCode)
	assert.Nil(t, shipment.Details)
	assert.Equal(t, int64(3), shipment.InvoiceID)
	require.NotNil(t, shipment.Invoice)
	assert.Equal(t, "INV-3", shipment.Invoice.Code)
	assert.Equal(t, invoicemodels.InvoiceStatusPaid, shipment.Invoice.Status)
	assert.Equal(t, invoicemodels.PaymentMethodPaypal, shipment.Invoice.PaymentMethod)
	assert.True(t, decimal.RequireFromString("125.50").Equal(shipment.Invoice.PaymentAmount))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(joinClause + " WHERE e.id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(rowColumns))

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllByLeavesMissingInvoiceNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(joinClause + " ORDER BY e.id ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(rowColumns).
			AddRow(int64(1), nil, date, "fragile", int64(8),
				nil, nil, nil, nil, nil, nil, nil, nil).
			AddRow(int64(2), "TRK-2", date, nil, int64(3),
				int64(3), "INV-3", date, nil, "ISSUED", "CASH_ON_DELIVERY", date, "10.00"))

	page := core.NewPageable(0, 20, core.Order{Property: "id"})
	shipments, err := repo.FindAllBy(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, shipments, 2)

	assert.Nil(t, shipments[0].Invoice)
	assert.Equal(t, int64(8), shipments[0].InvoiceID)
	require.NotNil(t, shipments[0].Details)
	assert.Equal(t, "fragile", *shipments[0].Details)
	require.NotNil(t, shipments[1].Invoice)
	assert.Nil(t, shipments[1].Invoice.Details)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOmitsInvoice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shipment"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	shipment := &models.Shipment{
		Date:      time.Now(),
		InvoiceID: 3,
		Invoice:   &invoicemodels.Invoice{ID: 3, Code: "INV-3"},
	}
	require.NoError(t, repo.Create(context.Background(), shipment))

	assert.Equal(t, int64(11), shipment.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "shipment" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "shipment" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	shipment := &models.Shipment{ID: 4, Date: time.Now(), InvoiceID: 3}
	require.NoError(t, repo.Update(context.Background(), shipment))

	err := repo.Update(context.Background(), &models.Shipment{ID: 99, Date: time.Now(), InvoiceID: 3})
	assert.ErrorIs(t, err, core.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountExistsDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "shipment"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "shipment" WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shipment" WHERE "shipment"."id" = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	exists, err := repo.Exists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShipmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "shipment"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx Store) error {
		_, err := tx.Count(context.Background())
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

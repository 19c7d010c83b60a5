package repositories

import (
	"database/sql"
	"github.com/shopspring/decimal"
	"invoice-service/core"
	invoicemodels "invoice-service/invoices/models"
	"invoice-service/shipments/models"
	"strconv"
	"strings"
)

const (
	entityAlias  = "e"
	invoiceAlias = "invoice"
)

var sortColumns = map[string]string{
	"id":           entityAlias + ".id",
	"trackingCode": entityAlias + ".tracking_code",
	"date":         entityAlias + ".date",
	"details":      entityAlias + ".details",
}

// shipmentColumns lists the shipment columns, each aliased as <alias>_<column>.
func shipmentColumns(alias string) []string {
	return aliased(alias, "id", "tracking_code", "date", "details", "invoice_id")
}

// invoiceColumns lists the invoice columns, each aliased as <alias>_<column>.
func invoiceColumns(alias string) []string {
	return aliased(alias,
		"id", "code", "date", "details", "status", "payment_method", "payment_date", "payment_amount")
}

func aliased(alias string, columns ...string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c + " AS " + alias + "_" + c
	}
	return out
}

// selectQuery renders the shipment to invoice join with an optional WHERE
// clause and page. The WHERE clause may contain ? placeholders.
func selectQuery(page *core.Pageable, where string) (string, error) {
	columns := append(shipmentColumns(entityAlias), invoiceColumns(invoiceAlias)...)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(" FROM shipment " + entityAlias)
	b.WriteString(" LEFT OUTER JOIN invoice " + invoiceAlias)
	b.WriteString(" ON " + entityAlias + ".invoice_id = " + invoiceAlias + ".id")

	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}

	if page != nil {
		orderBy, err := page.OrderBy(sortColumns)
		if err != nil {
			return "", err
		}
		if orderBy != "" {
			b.WriteString(" ORDER BY ")
			b.WriteString(orderBy)
		}
		b.WriteString(" LIMIT " + strconv.Itoa(page.Size))
		b.WriteString(" OFFSET " + strconv.Itoa(page.Offset()))
	}

	return b.String(), nil
}

// shipmentRow mirrors one row of selectQuery in column order.
type shipmentRow struct {
	ID           int64
	TrackingCode sql.NullString
	Date         sql.NullTime
	Details      sql.NullString
	InvoiceID    sql.NullInt64

	InvoiceRefID         sql.NullInt64
	InvoiceCode          sql.NullString
	InvoiceDate          sql.NullTime
	InvoiceDetails       sql.NullString
	InvoiceStatus        sql.NullString
	InvoicePaymentMethod sql.NullString
	InvoicePaymentDate   sql.NullTime
	InvoicePaymentAmount decimal.NullDecimal
}

func (r *shipmentRow) dest() []any {
	return []any{
		&r.ID, &r.TrackingCode, &r.Date, &r.Details, &r.InvoiceID,
		&r.InvoiceRefID, &r.InvoiceCode, &r.InvoiceDate, &r.InvoiceDetails, &r.InvoiceStatus,
		&r.InvoicePaymentMethod, &r.InvoicePaymentDate, &r.InvoicePaymentAmount,
	}
}

// mapRow scans the current row into a Shipment with its nested Invoice.
func mapRow(rows *sql.Rows) (models.Shipment, error) {
	var r shipmentRow
	if err := rows.Scan(r.dest()...); err != nil {
		return models.Shipment{}, err
	}

	shipment := models.Shipment{
		ID:           r.ID,
		TrackingCode: nullString(r.TrackingCode),
		Date:         r.Date.Time,
		Details:      nullString(r.Details),
		InvoiceID:    r.InvoiceID.Int64,
	}

	if r.InvoiceRefID.Valid {
		shipment.Invoice = &invoicemodels.Invoice{
			ID:            r.InvoiceRefID.Int64,
			Code:          r.InvoiceCode.String,
			Date:          r.InvoiceDate.Time,
			Details:       nullString(r.InvoiceDetails),
			Status:        invoicemodels.InvoiceStatus(r.InvoiceStatus.String),
			PaymentMethod: invoicemodels.PaymentMethod(r.InvoicePaymentMethod.String),
			PaymentDate:   r.InvoicePaymentDate.Time,
			PaymentAmount: r.InvoicePaymentAmount.Decimal,
		}
	}

	return shipment, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

package models

import (
	"fmt"
	"go.uber.org/zap/zapcore"
	"invoice-service/core"
	invoicemodels "invoice-service/invoices/models"
	"time"
)

// Shipment represents the shipment table. Invoice is loaded eagerly by the repository.
type Shipment struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingCode *string   `gorm:"size:255" json:"trackingCode,omitempty"`
	Date         time.Time `gorm:"not null" json:"date"`
	Details      *string   `gorm:"size:255" json:"details,omitempty"`

	// Foreign keys
	InvoiceID int64                  `gorm:"not null" json:"-"`
	Invoice   *invoicemodels.Invoice `gorm:"foreignKey:InvoiceID;references:ID" json:"invoice"`
}

func (Shipment) TableName() string {
	return "shipment"
}

// Validate checks the required fields and resolves InvoiceID from the nested invoice.
func (s *Shipment) Validate() error {
	if s.Invoice != nil && s.Invoice.ID != 0 {
		s.InvoiceID = s.Invoice.ID
	}

	switch {
	case s.Date.IsZero():
		return fmt.Errorf("%w: date is required", core.ErrInvalidInput)
	case s.InvoiceID == 0:
		return fmt.Errorf("%w: invoice is required", core.ErrInvalidInput)
	}
	return nil
}

func (s *Shipment) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("id", s.ID)
	if s.TrackingCode != nil {
		enc.AddString("trackingCode", *s.TrackingCode)
	}
	enc.AddTime("date", s.Date)
	if s.Details != nil {
		enc.AddString("details", *s.Details)
	}
	enc.AddInt64("invoiceId", s.InvoiceID)
	return nil
}

// ShipmentPatch carries the fields of a partial update; nil fields are left untouched.
type ShipmentPatch struct {
	ID           int64      `json:"id"`
	TrackingCode *string    `json:"trackingCode"`
	Date         *time.Time `json:"date"`
	Details      *string    `json:"details"`
}

// Apply copies the non-nil fields of the patch onto shipment.
func (p *ShipmentPatch) Apply(shipment *Shipment) {
	if p.TrackingCode != nil {
		shipment.TrackingCode = p.TrackingCode
	}
	if p.Date != nil {
		shipment.Date = *p.Date
	}
	if p.Details != nil {
		shipment.Details = p.Details
	}
}

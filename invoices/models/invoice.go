package models

import (
	"fmt"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zapcore"
	"invoice-service/core"
	"time"
)

type InvoiceStatus string

const (
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusIssued, InvoiceStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodPaypal         PaymentMethod = "PAYPAL"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodCashOnDelivery, PaymentMethodPaypal:
		return true
	}
	return false
}

// Invoice represents the invoice table
type Invoice struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string          `gorm:"size:255;not null" json:"code"`
	Date          time.Time       `gorm:"not null" json:"date"`
	Details       *string         `gorm:"size:255" json:"details,omitempty"`
	Status        InvoiceStatus   `gorm:"size:255;not null" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"size:255;not null" json:"paymentMethod"`
	PaymentDate   time.Time       `gorm:"not null" json:"paymentDate"`
	PaymentAmount decimal.Decimal `gorm:"type:numeric(21,2);not null" json:"paymentAmount"`
}

func (Invoice) TableName() string {
	return "invoice"
}

// Validate checks the required fields and enum values.
func (i *Invoice) Validate() error {
	switch {
	case i.Code == "":
		return fmt.Errorf("%w: code is required", core.ErrInvalidInput)
	case i.Date.IsZero():
		return fmt.Errorf("%w: date is required", core.ErrInvalidInput)
	case !i.Status.Valid():
		return fmt.Errorf("%w: invalid status %q", core.ErrInvalidInput, i.Status)
	case !i.PaymentMethod.Valid():
		return fmt.Errorf("%w: invalid payment method %q", core.ErrInvalidInput, i.PaymentMethod)
	case i.PaymentDate.IsZero():
		return fmt.Errorf("%w: payment date is required", core.ErrInvalidInput)
	}
	return nil
}

func (i *Invoice) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt64("id", i.ID)
	enc.AddString("code", i.Code)
	enc.AddTime("date", i.Date)
	if i.Details != nil {
		enc.AddString("details", *i.Details)
	}
	enc.AddString("status", string(i.Status))
	enc.AddString("paymentMethod", string(i.PaymentMethod))
	enc.AddTime("paymentDate", i.PaymentDate)
	enc.AddString("paymentAmount", i.PaymentAmount.String())
	return nil
}

// InvoiceInput is the body of a create or full update. The amount is nullable
// so that a missing amount is told apart from zero.
type InvoiceInput struct {
	ID            int64               `json:"id"`
	Code          string              `json:"code"`
	Date          time.Time           `json:"date"`
	Details       *string             `json:"details"`
	Status        InvoiceStatus       `json:"status"`
	PaymentMethod PaymentMethod       `json:"paymentMethod"`
	PaymentDate   time.Time           `json:"paymentDate"`
	PaymentAmount decimal.NullDecimal `json:"paymentAmount"`
}

// Invoice converts the input, rejecting a missing payment amount.
func (in *InvoiceInput) Invoice() (*Invoice, error) {
	if !in.PaymentAmount.Valid {
		return nil, fmt.Errorf("%w: payment amount is required", core.ErrInvalidInput)
	}
	return &Invoice{
		ID:            in.ID,
		Code:          in.Code,
		Date:          in.Date,
		Details:       in.Details,
		Status:        in.Status,
		PaymentMethod: in.PaymentMethod,
		PaymentDate:   in.PaymentDate,
		PaymentAmount: in.PaymentAmount.Decimal,
	}, nil
}

// InvoicePatch carries the fields of a partial update; nil fields are left untouched.
type InvoicePatch struct {
	ID            int64            `json:"id"`
	Code          *string          `json:"code"`
	Date          *time.Time       `json:"date"`
	Details       *string          `json:"details"`
	Status        *InvoiceStatus   `json:"status"`
	PaymentMethod *PaymentMethod   `json:"paymentMethod"`
	PaymentDate   *time.Time       `json:"paymentDate"`
	PaymentAmount *decimal.Decimal `json:"paymentAmount"`
}

// Apply copies the non-nil fields of the patch onto invoice.
func (p *InvoicePatch) Apply(invoice *Invoice) {
	if p.Code != nil {
		invoice.Code = *p.Code
	}
	if p.Date != nil {
		invoice.Date = *p.Date
	}
	if p.Details != nil {
		invoice.Details = p.Details
	}
	if p.Status != nil {
		invoice.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		invoice.PaymentMethod = *p.PaymentMethod
	}
	if p.PaymentDate != nil {
		invoice.PaymentDate = *p.PaymentDate
	}
	if p.PaymentAmount != nil {
		invoice.PaymentAmount = *p.PaymentAmount
	}
}

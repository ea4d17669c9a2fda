package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type DocumentRequest struct {
	RequestID   int64  `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	StudentID   int64  `gorm:"column:student_id;not null;index" json:"student_id"`
	StudentName string `gorm:"column:student_name;type:varchar(150);not null" json:"student_name"`
	Grade       string `gorm:"column:grade;type:varchar(50);not null" json:"grade"`
	Section     string `gorm:"column:section;type:varchar(50);not null" json:"section"`
	ContactNo   string `gorm:"column:contact_no;type:varchar(20);not null" json:"contact_no"`
	Email       string `gorm:"column:email;type:varchar(150);not null" json:"email"`

	PaymentMethod   string          `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	ScheduledPickUp time.Time       `gorm:"column:scheduled_pick_up;type:date" json:"scheduled_pick_up"`
	Status          string          `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2)" json:"total_amount"`
	DateRequested   time.Time       `gorm:"column:date_requested;autoCreateTime" json:"date_requested"`
	DateProcessed   *time.Time      `gorm:"column:date_processed" json:"date_processed,omitempty"`
	Notes           string          `gorm:"column:notes;type:text" json:"notes"`

	Documents []RequestDocument `gorm:"foreignKey:RequestID;references:RequestID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (DocumentRequest) TableName() string {
	return "document_requests"
}

// RequestDocument is one line item inside a request. Created together with
// its parent, never mutated afterwards.
type RequestDocument struct {
	RequestDocID int64           `gorm:"column:request_doc_id;primaryKey;autoIncrement" json:"request_doc_id"`
	RequestID    int64           `gorm:"column:request_id;not null;index" json:"request_id"`
	DocumentID   int64           `gorm:"column:document_id;not null" json:"document_id"`
	DocumentType string          `gorm:"column:document_type;type:varchar(100);not null" json:"document_type"`
	Quantity     int             `gorm:"column:quantity;not null;check:quantity > 0" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
}

func (RequestDocument) TableName() string {
	return "request_documents"
}

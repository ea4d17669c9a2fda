package model

import "github.com/shopspring/decimal"

// Document is one entry of the registrar's document catalog.
type Document struct {
	DocumentID   int64           `gorm:"column:document_id;primaryKey;autoIncrement" json:"document_id"`
	DocumentType string          `gorm:"column:document_type;type:varchar(100);not null" json:"document_type"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	IsActive     bool            `gorm:"column:is_active;default:true" json:"is_active"`
}

func (Document) TableName() string {
	return "documents"
}

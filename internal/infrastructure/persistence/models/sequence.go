package models

// Sequence names used by the local store
const (
	SequenceOrderNumber   = "order_number"
	SequenceInvoiceNumber = "invoice_number"
)

// SequenceModel backs monotonic number generation for order and invoice
// numbers. One row per sequence; incremented inside a transaction.
type SequenceModel struct {
	Name  string `gorm:"type:varchar(50);primary_key"`
	Value int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SequenceModel) TableName() string {
	return "sequences"
}

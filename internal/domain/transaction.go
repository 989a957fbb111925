package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TxTypeBuy  = "BUY"
	TxTypeSell = "SELL"
)

// Transaction is one buy or sell in a user's ledger. Rows are append-only:
// never updated or deleted after creation.
type Transaction struct {
	TransactionID   uuid.UUID `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`
	UserID          uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Symbol          string    `gorm:"column:symbol;not null" json:"symbol"`
	TransactionType string    `gorm:"column:transaction_type;type:varchar(4);not null" json:"transaction_type"`
	Units           int       `gorm:"column:units;not null" json:"units"`
	Price           float64   `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	TransactionDate time.Time `gorm:"column:transaction_date;not null" json:"transaction_date"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}

package domain

import "time"

// Price is the current quote for one symbol. One row per symbol, last write wins.
type Price struct {
	Symbol       string    `gorm:"column:symbol;primaryKey" json:"symbol"`
	CurrentPrice float64   `gorm:"column:current_price;type:decimal(18,2);not null" json:"current_price"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Price) TableName() string {
	return "prices"
}

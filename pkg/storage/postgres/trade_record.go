package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeRecord is one normalized aggregation bucket persisted to the
// database. (symbol, bucket) is unique; repeated ticks for a still-open
// bucket update the row in place, mirroring the in-memory merge.
type TradeRecord struct {
	ID uint `gorm:"primaryKey"`

	Symbol string    `gorm:"type:text;not null;index:idx_trade_symbol;index:idx_trade_symbol_bucket,unique"`
	Bucket time.Time `gorm:"not null;index:idx_trade_symbol_bucket,unique"`

	Price  decimal.Decimal `gorm:"type:numeric;not null"`
	Volume decimal.Decimal `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

// TableName overrides the default table name for GORM.
func (TradeRecord) TableName() string {
	return "trade_record"
}

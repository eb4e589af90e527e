package postgres

import (
	"context"
	"time"

	"marketfeed/internal/market"

	"gorm.io/gorm/clause"
)

// SaveTrade upserts one normalized trade. A repeated bucket overwrites
// price and volume, matching the adapter's in-place merge semantics. It
// satisfies the adapter's TradeSink interface.
func (p *PostgresClient) SaveTrade(symbol string, tr market.Trade) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.UpsertTrade(ctx, &TradeRecord{
		Symbol: symbol,
		Bucket: time.UnixMilli(tr.Timestamp),
		Price:  tr.Price,
		Volume: tr.Volume,
	})
}

func (p *PostgresClient) UpsertTrade(ctx context.Context, record *TradeRecord) error {
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "symbol"},
			{Name: "bucket"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"price", "volume"}),
	}).Create(record).Error
}

func (p *PostgresClient) GetTrade(ctx context.Context, symbol string, bucket time.Time) (*TradeRecord, error) {
	var record TradeRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ? AND bucket = ?", symbol, bucket).
		First(&record).Error

	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetTrades returns a symbol's persisted buckets in ascending order.
func (p *PostgresClient) GetTrades(ctx context.Context, symbol string, limit int) ([]TradeRecord, error) {
	var records []TradeRecord
	err := p.DB.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("bucket ASC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *PostgresClient) DeleteOldTrades(ctx context.Context, before time.Time) error {
	return p.DB.WithContext(ctx).
		Where("bucket < ?", before).
		Delete(&TradeRecord{}).Error
}

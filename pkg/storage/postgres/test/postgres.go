package storage

import (
	"database/sql"
	"time"

	"marketfeed/internal/market"

	_ "github.com/lib/pq"
)

// PostgresSink writes trades straight through database/sql, bypassing gorm.
// Used to cross-check the gorm client against raw SQL in integration tests.
type PostgresSink struct {
	db *sql.DB
}

func NewPostgresSink(dsn string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresSink{db: db}, nil
}

func (p *PostgresSink) SaveTrade(symbol string, tr market.Trade) error {
	_, err := p.db.Exec(
		`INSERT INTO trade_record (symbol, bucket, price, volume, recorded_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (symbol, bucket) DO UPDATE SET price = $3, volume = $4`,
		symbol, time.UnixMilli(tr.Timestamp), tr.Price.String(), tr.Volume.String(), time.Now(),
	)
	return err
}

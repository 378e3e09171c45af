package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"holdings/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

// Open connects to Postgres and checks the connection within five seconds.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}

type holdingRow struct {
	Symbol   string         `db:"symbol"`
	Quantity string         `db:"quantity"`
	AvgPrice string         `db:"avg_price"`
	LTP      sql.NullString `db:"ltp"`
}

// GetUserHoldings returns the user's holdings priced at the latest known
// price. Holdings without any price yet are skipped.
func (r *Repo) GetUserHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT h.symbol, h.quantity::text AS quantity, h.avg_price::text AS avg_price, p.price_inr::text AS ltp
		FROM holdings h
		LEFT JOIN LATERAL (
			SELECT price_inr FROM price_history
			WHERE symbol = h.symbol
			ORDER BY timestamp DESC LIMIT 1
		) p ON true
		WHERE h.user_id = $1 AND h.quantity > 0
		ORDER BY h.symbol ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query holdings: %w", err)
	}
	defer rows.Close()
	res := []models.Holding{}
	for rows.Next() {
		var hr holdingRow
		if err := rows.StructScan(&hr); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		if !hr.LTP.Valid {
			r.log.Warnf("no price for symbol %s", hr.Symbol)
			continue
		}
		h, err := hr.holding()
		if err != nil {
			r.log.Warnf("bad holding row for %s: %v", hr.Symbol, err)
			continue
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

func (hr holdingRow) holding() (models.Holding, error) {
	qty, err := decimal.NewFromString(hr.Quantity)
	if err != nil {
		return models.Holding{}, err
	}
	avg, err := decimal.NewFromString(hr.AvgPrice)
	if err != nil {
		return models.Holding{}, err
	}
	ltp, err := decimal.NewFromString(hr.LTP.String)
	if err != nil {
		return models.Holding{}, err
	}
	return models.Holding{Symbol: hr.Symbol, Quantity: qty, LTP: ltp, AvgPrice: avg}, nil
}

// AddHolding buys quantity at price, keeping avg_price as the
// quantity-weighted average acquisition price.
func (r *Repo) AddHolding(ctx context.Context, userID, symbol string, quantity, price decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO holdings (user_id, symbol, quantity, avg_price, last_updated)
		VALUES ($1, $2, $3::numeric, $4::numeric, now())
		ON CONFLICT (user_id, symbol) DO UPDATE SET
			avg_price = CASE WHEN holdings.quantity + EXCLUDED.quantity = 0 THEN 0
				ELSE (holdings.quantity * holdings.avg_price + EXCLUDED.quantity * EXCLUDED.avg_price)
					/ (holdings.quantity + EXCLUDED.quantity) END,
			quantity = holdings.quantity + EXCLUDED.quantity,
			last_updated = now()`,
		userID, symbol, quantity.String(), price.StringFixed(4))
	if err != nil {
		return fmt.Errorf("add holding %s: %w", symbol, err)
	}
	return nil
}

func (r *Repo) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	var priceStr string
	var ts time.Time
	if err := r.db.QueryRowContext(ctx, `SELECT price_inr::text, timestamp FROM price_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`, symbol).Scan(&priceStr, &ts); err != nil {
		return decimal.Zero, time.Time{}, err
	}
	p, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, time.Time{}, err
	}
	return p, ts, nil
}

func (r *Repo) UpsertPrice(ctx context.Context, symbol string, price decimal.Decimal, ts time.Time) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO price_history (symbol, price_inr, timestamp) VALUES ($1, $2::numeric, $3)`, symbol, price.StringFixed(4), ts)
	return err
}

func (r *Repo) GetAllSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT symbol FROM stocks ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			r.log.Warnf("scan symbol failed: %v", err)
			continue
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *Repo) EnsureStockExists(ctx context.Context, symbol, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO stocks (symbol, name) VALUES ($1, $2) ON CONFLICT (symbol) DO NOTHING`, symbol, name)
	return err
}

func (r *Repo) EnsureUserExists(ctx context.Context, userID, name string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, userID, name)
	return err
}

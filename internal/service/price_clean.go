package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type PriceStore interface {
	GetAllSymbols(ctx context.Context) ([]string, error)
	GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error)
	UpsertPrice(ctx context.Context, symbol string, price decimal.Decimal, ts time.Time) error
}

// PriceService moves the last traded price of every known symbol on a timer
// so the holdings feed has something to report.
type PriceService struct {
	store PriceStore
	log   *logrus.Logger
	rnd   *rand.Rand
	now   func() time.Time
}

func NewPriceService(s PriceStore, log *logrus.Logger) *PriceService {
	return &PriceService{
		store: s,
		log:   log,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Next returns the price following prev: a step of at most ±2%, or a fresh
// price in [50, 5000) when there is no previous price.
func (p *PriceService) Next(prev decimal.Decimal, ok bool) decimal.Decimal {
	if !ok || !prev.IsPositive() {
		return decimal.NewFromFloat(50 + p.rnd.Float64()*(5000-50)).Round(2)
	}
	step := decimal.NewFromFloat((p.rnd.Float64()*2 - 1) * 0.02)
	return prev.Add(prev.Mul(step)).Round(2)
}

// Tick updates every symbol once.
func (p *PriceService) Tick(ctx context.Context) error {
	symbols, err := p.store.GetAllSymbols(ctx)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		prev, _, err := p.store.GetLatestPrice(ctx, s)
		val := p.Next(prev, err == nil)
		if err := p.store.UpsertPrice(ctx, s, val, p.now()); err != nil {
			p.log.Warnf("update price for %s failed: %v", s, err)
		}
	}
	return nil
}

func (p *PriceService) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				p.log.Info("price updater stopping")
				return
			case <-ticker.C:
				if err := p.Tick(ctx); err != nil {
					p.log.Warnf("failed to fetch symbols: %v", err)
				}
			}
		}
	}()
}

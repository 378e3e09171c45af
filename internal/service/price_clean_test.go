package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPriceStore struct {
	mock.Mock
}

func (m *MockPriceStore) GetAllSymbols(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPriceStore) GetLatestPrice(ctx context.Context, symbol string) (decimal.Decimal, time.Time, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockPriceStore) UpsertPrice(ctx context.Context, symbol string, price decimal.Decimal, ts time.Time) error {
	args := m.Called(ctx, symbol, price, ts)
	return args.Error(0)
}

func newTestService(store PriceStore, now time.Time) *PriceService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	p := NewPriceService(store, log)
	p.rnd = rand.New(rand.NewSource(1))
	p.now = func() time.Time { return now }
	return p
}

func TestNext_BoundedStep(t *testing.T) {
	p := newTestService(&MockPriceStore{}, time.Now())
	prev := decimal.NewFromInt(1000)
	for i := 0; i < 500; i++ {
		next := p.Next(prev, true)
		assert.True(t, next.GreaterThanOrEqual(decimal.NewFromInt(980)), "next %s", next)
		assert.True(t, next.LessThanOrEqual(decimal.NewFromInt(1020)), "next %s", next)
	}
}

func TestNext_FreshPrice(t *testing.T) {
	p := newTestService(&MockPriceStore{}, time.Now())
	for i := 0; i < 500; i++ {
		v := p.Next(decimal.Zero, false)
		assert.True(t, v.GreaterThanOrEqual(decimal.NewFromInt(50)), "v %s", v)
		assert.True(t, v.LessThanOrEqual(decimal.NewFromInt(5000)), "v %s", v)
	}
}

func TestTick(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 15, 9, 15, 0, 0, time.UTC)
	store := &MockPriceStore{}
	store.On("GetAllSymbols", ctx).Return([]string{"TCS", "NEW"}, nil)
	store.On("GetLatestPrice", ctx, "TCS").Return(decimal.NewFromInt(3500), now.Add(-time.Hour), nil)
	store.On("GetLatestPrice", ctx, "NEW").Return(decimal.Zero, time.Time{}, sql.ErrNoRows)
	store.On("UpsertPrice", ctx, "TCS", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.GreaterThanOrEqual(decimal.NewFromInt(3430)) && d.LessThanOrEqual(decimal.NewFromInt(3570))
	}), now).Return(nil).Once()
	store.On("UpsertPrice", ctx, "NEW", mock.AnythingOfType("decimal.Decimal"), now).Return(errors.New("write failed")).Once()

	require.NoError(t, newTestService(store, now).Tick(ctx))
	store.AssertExpectations(t)
}

func TestTick_SymbolsError(t *testing.T) {
	ctx := context.Background()
	store := &MockPriceStore{}
	store.On("GetAllSymbols", ctx).Return(nil, errors.New("db down"))

	assert.Error(t, newTestService(store, time.Now()).Tick(ctx))
	store.AssertNotCalled(t, "UpsertPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

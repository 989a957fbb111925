// Package prices owns the symbol-to-quote mapping. Quotes are mutated by
// manual updates and by the periodic fluctuation job through the same upsert
// path; one row per symbol, last write wins.
package prices

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"wealthwise-backend/internal/domain"
	"wealthwise-backend/internal/pkg/money"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSymbolNotFound = errors.New("Symbol not found")

type Service struct {
	DB *gorm.DB
}

// Find returns the quote for one symbol (already normalized by the caller).
func (s *Service) Find(ctx context.Context, symbol string) (*domain.Price, error) {
	var p domain.Price
	if err := s.DB.WithContext(ctx).Where("symbol = ?", symbol).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSymbolNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListAll returns the full symbol-to-price mapping.
func (s *Service) ListAll(ctx context.Context) (map[string]float64, error) {
	var rows []domain.Price
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, p := range rows {
		out[p.Symbol] = p.CurrentPrice
	}
	return out, nil
}

// Upsert writes the quote for a symbol, inserting or overwriting the one row.
func (s *Service) Upsert(ctx context.Context, symbol string, price float64) (*domain.Price, error) {
	p := domain.Price{
		Symbol:       symbol,
		CurrentPrice: price,
		UpdatedAt:    time.Now(),
	}
	if err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_price", "updated_at"}),
	}).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FluctuateAll applies a random jitter in [-5%, +5%] to every stored quote,
// rounded to 2 decimals. Returns the number of symbols updated. Invoked by the
// scheduler and by the admin trigger endpoint.
func (s *Service) FluctuateAll(ctx context.Context) (int, error) {
	prices, err := s.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for symbol, current := range prices {
		fluctuation := rand.Float64()*0.10 - 0.05
		newPrice := money.Round2(current * (1 + fluctuation))
		if _, err := s.Upsert(ctx, symbol, newPrice); err != nil {
			return 0, err
		}
	}
	return len(prices), nil
}

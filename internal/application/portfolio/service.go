// Package portfolio holds the valuation core: folding a user's transaction
// history into current holdings and pricing those holdings at market.
package portfolio

import (
	"context"
	"sort"

	"wealthwise-backend/internal/domain"
	"wealthwise-backend/internal/pkg/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service encapsulates portfolio computations over the transaction and price stores.
type Service struct {
	DB *gorm.DB
}

// symbolTotals are the per-symbol running sums maintained during aggregation.
type symbolTotals struct {
	buyUnits  int
	buyCost   float64
	sellUnits int
}

// Aggregate folds a transaction list into per-symbol holdings. Pure: the fold
// is commutative, so ingestion order does not affect the result.
//
// Average cost is computed from cumulative buy cost, never revised on sells:
// sells reduce quantity but keep the pooled average. A symbol whose net units
// are zero or negative is omitted entirely. Division by zero is structurally
// impossible since net units only become positive via buys.
func Aggregate(txns []domain.Transaction) map[string]domain.Holding {
	totals := make(map[string]symbolTotals)
	for _, txn := range txns {
		t := totals[txn.Symbol]
		if txn.TransactionType == domain.TxTypeBuy {
			t.buyUnits += txn.Units
			t.buyCost += float64(txn.Units) * txn.Price
		} else {
			t.sellUnits += txn.Units
		}
		totals[txn.Symbol] = t
	}

	holdings := make(map[string]domain.Holding)
	for symbol, t := range totals {
		netUnits := t.buyUnits - t.sellUnits
		if netUnits <= 0 {
			continue
		}
		avgCost := money.Round2(t.buyCost / float64(t.buyUnits))
		holdings[symbol] = domain.Holding{
			Symbol:      symbol,
			TotalUnits:  netUnits,
			AverageCost: avgCost,
			CostBasis:   money.Round2(avgCost * float64(netUnits)),
		}
	}
	return holdings
}

// Valuate combines holdings with the current price map into a summary. A symbol
// held but absent from prices is valued at 0 (stale/unknown quote, not an
// error). Holdings are emitted sorted by symbol so the output is deterministic.
func Valuate(userID string, holdings map[string]domain.Holding, prices map[string]float64) domain.PortfolioSummary {
	symbols := make([]string, 0, len(holdings))
	for symbol := range holdings {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	totalInvested := 0.0
	currentValue := 0.0
	details := make([]domain.HoldingDetail, 0, len(symbols))

	for _, symbol := range symbols {
		h := holdings[symbol]
		price := prices[symbol]
		units := float64(h.TotalUnits)

		value := price * units
		pl := (price - h.AverageCost) * units
		plPercent := 0.0
		if h.CostBasis > 0 {
			plPercent = money.Round2(pl / h.CostBasis * 100)
		}

		totalInvested += h.CostBasis
		currentValue += value

		details = append(details, domain.HoldingDetail{
			Symbol:              symbol,
			TotalUnits:          h.TotalUnits,
			AverageCost:         h.AverageCost,
			CurrentPrice:        price,
			CurrentValue:        money.Round2(value),
			UnrealizedPL:        money.Round2(pl),
			UnrealizedPLPercent: plPercent,
		})
	}

	totalPL := currentValue - totalInvested
	totalPLPercent := 0.0
	if totalInvested > 0 {
		totalPLPercent = money.Round2(totalPL / totalInvested * 100)
	}

	return domain.PortfolioSummary{
		UserID:         userID,
		TotalInvested:  money.Round2(totalInvested),
		CurrentValue:   money.Round2(currentValue),
		TotalPL:        money.Round2(totalPL),
		TotalPLPercent: totalPLPercent,
		Holdings:       details,
	}
}

// CalculateHoldings loads the user's full transaction history and aggregates
// it. Recomputed from scratch on every call; there is no materialized position
// table.
func (s *Service) CalculateHoldings(ctx context.Context, userID uuid.UUID) (map[string]domain.Holding, error) {
	var txns []domain.Transaction
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("transaction_date DESC, created_at DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return Aggregate(txns), nil
}

// Summary computes the full valuation report for a user.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID) (*domain.PortfolioSummary, error) {
	holdings, err := s.CalculateHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []domain.Price
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	prices := make(map[string]float64, len(rows))
	for _, p := range rows {
		prices[p.Symbol] = p.CurrentPrice
	}

	summary := Valuate(userID.String(), holdings, prices)
	return &summary, nil
}

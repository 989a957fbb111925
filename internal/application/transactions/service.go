// Package transactions owns the transaction ledger and the acceptance rules
// enforced before a transaction is persisted.
package transactions

import (
	"context"
	"time"

	"wealthwise-backend/internal/application/portfolio"
	"wealthwise-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service validates and persists transactions. Validation checks run in a
// fixed order and short-circuit: UserNotFound, InvalidSymbol, FutureDate,
// then InsufficientHoldings (SELL only).
//
// Known limitation: the sufficient-holdings check and the insert are not
// atomic with respect to concurrent requests from the same user; two
// concurrent SELLs can both pass validation against the same pre-sale balance.
type Service struct {
	DB        *gorm.DB
	Portfolio *portfolio.Service
}

// CreateInput is a proposed transaction. The symbol must already be normalized
// (uppercase) and the shape checks (positive units, positive 2-decimal price,
// BUY/SELL membership) done by the caller.
type CreateInput struct {
	UserID          uuid.UUID
	Symbol          string
	TransactionType string
	Units           int
	Price           float64
	TransactionDate time.Time
}

// Create validates the proposed transaction and appends it to the ledger.
// The caller is responsible for invalidating the user's cached valuation
// after a successful create.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	var user domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", in.UserID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var price domain.Price
	if err := s.DB.WithContext(ctx).Where("symbol = ?", in.Symbol).First(&price).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrInvalidSymbol
		}
		return nil, err
	}

	if in.TransactionDate.After(endOfToday()) {
		return nil, ErrFutureDate
	}

	if in.TransactionType == domain.TxTypeSell {
		holdings, err := s.Portfolio.CalculateHoldings(ctx, in.UserID)
		if err != nil {
			return nil, err
		}
		available := holdings[in.Symbol].TotalUnits
		if available < in.Units {
			return nil, &InsufficientHoldingsError{
				Symbol:    in.Symbol,
				Available: available,
				Requested: in.Units,
			}
		}
	}

	txn := &domain.Transaction{
		UserID:          in.UserID,
		Symbol:          in.Symbol,
		TransactionType: in.TransactionType,
		Units:           in.Units,
		Price:           in.Price,
		TransactionDate: in.TransactionDate,
	}
	if err := s.DB.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, err
	}
	return txn, nil
}

// ListByUser returns the user's transactions, optionally filtered by symbol,
// ordered by transaction date then creation time, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, symbol string) ([]domain.Transaction, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	var txns []domain.Transaction
	if err := q.Order("transaction_date DESC, created_at DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// endOfToday: a transaction dated any time today is accepted; only strictly
// future dates are rejected.
func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24*time.Hour - time.Nanosecond)
}

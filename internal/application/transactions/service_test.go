package transactions

import (
	"context"
	"testing"
	"time"

	"wealthwise-backend/internal/application/portfolio"
	"wealthwise-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Price{}, &domain.Transaction{}))
	return &Service{DB: db, Portfolio: &portfolio.Service{DB: db}}, db
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	u := &domain.User{Name: "Test User", Email: uuid.New().String() + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u.UserID
}

func seedPrice(t *testing.T, db *gorm.DB, symbol string, price float64) {
	require.NoError(t, db.Create(&domain.Price{Symbol: symbol, CurrentPrice: price, UpdatedAt: time.Now()}).Error)
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}

func buyInput(userID uuid.UUID, symbol string, units int, price float64) CreateInput {
	return CreateInput{
		UserID: userID, Symbol: symbol, TransactionType: domain.TxTypeBuy,
		Units: units, Price: price, TransactionDate: yesterday(),
	}
}

func sellInput(userID uuid.UUID, symbol string, units int, price float64) CreateInput {
	in := buyInput(userID, symbol, units, price)
	in.TransactionType = domain.TxTypeSell
	return in
}

func TestCreate_UserNotFound(t *testing.T) {
	svc, _ := setupService(t)

	// Unknown user and unknown symbol: the user check fires first.
	_, err := svc.Create(context.Background(), buyInput(uuid.New(), "AAPL", 1, 100))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreate_InvalidSymbol(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)

	_, err := svc.Create(context.Background(), buyInput(userID, "NOPE", 1, 100))
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestCreate_FutureDate(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)

	in := buyInput(userID, "AAPL", 1, 100)
	in.TransactionDate = time.Now().AddDate(0, 0, 1)
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrFutureDate)
}

func TestCreate_TodayAccepted(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)

	in := buyInput(userID, "AAPL", 1, 100)
	in.TransactionDate = time.Now()
	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreate_SellWithoutHoldings(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)

	_, err := svc.Create(context.Background(), sellInput(userID, "AAPL", 1, 130))

	var insufficient *InsufficientHoldingsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Available)
	assert.Equal(t, 1, insufficient.Requested)
}

func TestCreate_SellExceedingHoldings(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)
	ctx := context.Background()

	_, err := svc.Create(ctx, buyInput(userID, "AAPL", 10, 100.00))
	require.NoError(t, err)
	_, err = svc.Create(ctx, buyInput(userID, "AAPL", 10, 120.00))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sellInput(userID, "AAPL", 5, 125.00))
	require.NoError(t, err)

	// Holding 15; selling 16 must be rejected.
	_, err = svc.Create(ctx, sellInput(userID, "AAPL", 16, 125.00))
	var insufficient *InsufficientHoldingsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "AAPL", insufficient.Symbol)
	assert.Equal(t, 15, insufficient.Available)
	assert.Equal(t, 16, insufficient.Requested)
	assert.Contains(t, insufficient.Error(), "Available: 15, Requested: 16")
}

func TestCreate_SellToExactlyZero(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)
	ctx := context.Background()

	_, err := svc.Create(ctx, buyInput(userID, "AAPL", 10, 100.00))
	require.NoError(t, err)
	_, err = svc.Create(ctx, sellInput(userID, "AAPL", 10, 120.00))
	require.NoError(t, err)

	holdings, err := svc.Portfolio.CalculateHoldings(ctx, userID)
	require.NoError(t, err)
	assert.NotContains(t, holdings, "AAPL")

	// Position is gone; a further sell of even one unit is rejected.
	_, err = svc.Create(ctx, sellInput(userID, "AAPL", 1, 120.00))
	var insufficient *InsufficientHoldingsError
	assert.ErrorAs(t, err, &insufficient)
}

func TestCreate_AcceptedSellNeverGoesNegative(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)
	ctx := context.Background()

	_, err := svc.Create(ctx, buyInput(userID, "AAPL", 7, 100.00))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		if _, err := svc.Create(ctx, sellInput(userID, "AAPL", 2, 110.00)); err != nil {
			break
		}
	}

	holdings, err := svc.Portfolio.CalculateHoldings(ctx, userID)
	require.NoError(t, err)
	if h, ok := holdings["AAPL"]; ok {
		assert.Greater(t, h.TotalUnits, 0)
	}
}

func TestCreate_PersistsTransaction(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)

	txn, err := svc.Create(context.Background(), buyInput(userID, "AAPL", 10, 100.00))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, txn.TransactionID)

	var count int64
	require.NoError(t, db.Model(&domain.Transaction{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestListByUser_OrderAndFilter(t *testing.T) {
	svc, db := setupService(t)
	userID := seedUser(t, db)
	seedPrice(t, db, "AAPL", 130.00)
	seedPrice(t, db, "MSFT", 300.00)
	ctx := context.Background()

	older := buyInput(userID, "AAPL", 1, 100.00)
	older.TransactionDate = time.Now().AddDate(0, 0, -3)
	_, err := svc.Create(ctx, older)
	require.NoError(t, err)

	newer := buyInput(userID, "MSFT", 2, 300.00)
	newer.TransactionDate = time.Now().AddDate(0, 0, -1)
	_, err = svc.Create(ctx, newer)
	require.NoError(t, err)

	all, err := svc.ListByUser(ctx, userID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "MSFT", all[0].Symbol) // newest first
	assert.Equal(t, "AAPL", all[1].Symbol)

	filtered, err := svc.ListByUser(ctx, userID, "AAPL")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "AAPL", filtered[0].Symbol)
}

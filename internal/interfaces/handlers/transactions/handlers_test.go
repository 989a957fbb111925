package transactions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"wealthwise-backend/internal/application/portfolio"
	txsvc "wealthwise-backend/internal/application/transactions"
	"wealthwise-backend/internal/cache"
	"wealthwise-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB, *cache.Service, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Price{}, &domain.Transaction{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	cacheSvc := &cache.Service{Rdb: rdb, DefaultTTL: time.Minute}

	svc := &txsvc.Service{DB: db, Portfolio: &portfolio.Service{DB: db}}
	h := &Handlers{Service: svc, Cache: cacheSvc}

	app := fiber.New()
	app.Post("/transactions", h.Create)
	app.Get("/transactions", h.List)
	return app, db, cacheSvc, mr
}

func seed(t *testing.T, db *gorm.DB) uuid.UUID {
	u := &domain.User{Name: "Test User", Email: "tx@example.com"}
	require.NoError(t, db.Create(u).Error)
	require.NoError(t, db.Create(&domain.Price{Symbol: "AAPL", CurrentPrice: 130.00, UpdatedAt: time.Now()}).Error)
	return u.UserID
}

func doPost(t *testing.T, app *fiber.App, payload map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/transactions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func validPayload(userID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"user_id":          userID.String(),
		"symbol":           "aapl",
		"transaction_type": "BUY",
		"units":            10,
		"price":            100.00,
		"transaction_date": time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
	}
}

func TestCreateTransaction_Success(t *testing.T) {
	app, db, _, _ := setupApp(t)
	userID := seed(t, db)

	status, out := doPost(t, app, validPayload(userID))
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "success", out["status"])

	data, _ := out["data"].(map[string]interface{})
	assert.Equal(t, "AAPL", data["symbol"]) // normalized
	assert.Equal(t, "BUY", data["transaction_type"])
}

func TestCreateTransaction_ShapeValidation(t *testing.T) {
	app, db, _, _ := setupApp(t)
	userID := seed(t, db)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"bad uuid", func(p map[string]interface{}) { p["user_id"] = "not-a-uuid" }},
		{"bad type", func(p map[string]interface{}) { p["transaction_type"] = "HOLD" }},
		{"zero units", func(p map[string]interface{}) { p["units"] = 0 }},
		{"negative units", func(p map[string]interface{}) { p["units"] = -5 }},
		{"zero price", func(p map[string]interface{}) { p["price"] = 0 }},
		{"three decimals", func(p map[string]interface{}) { p["price"] = 10.123 }},
		{"bad symbol", func(p map[string]interface{}) { p["symbol"] = "123!" }},
		{"bad date", func(p map[string]interface{}) { p["transaction_date"] = "01-02-2024" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validPayload(userID)
			tc.mutate(p)
			status, _ := doPost(t, app, p)
			assert.Equal(t, fiber.StatusBadRequest, status)
		})
	}
}

func TestCreateTransaction_FutureDateRejectedBeforeStores(t *testing.T) {
	app, _, _, _ := setupApp(t)

	// Unknown user AND future date: the shape-level date bound fires first,
	// so this is 400, not 404.
	p := validPayload(uuid.New())
	p["transaction_date"] = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	status, out := doPost(t, app, p)
	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj, _ := out["error"].(map[string]interface{})
	assert.Contains(t, errObj["message"], "future")
}

func TestCreateTransaction_UnknownUser(t *testing.T) {
	app, db, _, _ := setupApp(t)
	seed(t, db)

	p := validPayload(uuid.New())
	status, _ := doPost(t, app, p)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCreateTransaction_UnknownSymbol(t *testing.T) {
	app, db, _, _ := setupApp(t)
	userID := seed(t, db)

	p := validPayload(userID)
	p["symbol"] = "ZZZZ"
	status, _ := doPost(t, app, p)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateTransaction_InsufficientHoldings(t *testing.T) {
	app, db, _, _ := setupApp(t)
	userID := seed(t, db)

	p := validPayload(userID)
	p["transaction_type"] = "SELL"
	p["units"] = 1
	status, out := doPost(t, app, p)
	assert.Equal(t, fiber.StatusBadRequest, status)
	errObj, _ := out["error"].(map[string]interface{})
	assert.Contains(t, errObj["message"], "Insufficient holdings")
}

func TestCreateTransaction_InvalidatesCachedValuation(t *testing.T) {
	app, db, cacheSvc, mr := setupApp(t)
	userID := seed(t, db)
	ctx := context.Background()

	key := cache.PortfolioKey(userID.String())
	cacheSvc.Set(ctx, key, map[string]interface{}{"stale": true})
	require.True(t, mr.Exists(key))

	status, _ := doPost(t, app, validPayload(userID))
	require.Equal(t, fiber.StatusCreated, status)
	assert.False(t, mr.Exists(key))
}

func TestCreateTransaction_RejectedLeavesCacheAlone(t *testing.T) {
	app, db, cacheSvc, mr := setupApp(t)
	userID := seed(t, db)
	ctx := context.Background()

	key := cache.PortfolioKey(userID.String())
	cacheSvc.Set(ctx, key, map[string]interface{}{"stale": true})

	p := validPayload(userID)
	p["transaction_type"] = "SELL"
	status, _ := doPost(t, app, p)
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.True(t, mr.Exists(key))
}

func TestListTransactions(t *testing.T) {
	app, db, _, _ := setupApp(t)
	userID := seed(t, db)

	status, _ := doPost(t, app, validPayload(userID))
	require.Equal(t, fiber.StatusCreated, status)

	req := httptest.NewRequest("GET", "/transactions?user_id="+userID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&out)
	data, _ := out["data"].([]interface{})
	assert.Len(t, data, 1)

	// Symbol filter, lowercase input normalized.
	req = httptest.NewRequest("GET", "/transactions?user_id="+userID.String()+"&symbol=aapl", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	json.NewDecoder(resp.Body).Decode(&out)
	data, _ = out["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestListTransactions_MissingUserID(t *testing.T) {
	app, _, _, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/transactions", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

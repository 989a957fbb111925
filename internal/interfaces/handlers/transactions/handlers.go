package transactions

import (
	"errors"
	"time"

	txsvc "wealthwise-backend/internal/application/transactions"
	"wealthwise-backend/internal/cache"
	"wealthwise-backend/internal/pkg/money"
	"wealthwise-backend/internal/pkg/response"
	"wealthwise-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *txsvc.Service
	Cache   *cache.Service
}

type createBody struct {
	UserID          string  `json:"user_id"`
	Symbol          string  `json:"symbol"`
	TransactionType string  `json:"transaction_type"`
	Units           int     `json:"units"`
	Price           float64 `json:"price"`
	TransactionDate string  `json:"transaction_date"`
}

const dateLayout = "2006-01-02"

// Create POST /transactions. Input-shape validation happens here; business
// rules run in the service. The user's cached valuation is invalidated only
// after a successful insert.
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}

	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		return response.Error(c, "Invalid UUID format for user_id", fiber.StatusBadRequest)
	}
	symbol := validation.NormalizeSymbol(body.Symbol)
	if !validation.IsValidSymbol(symbol) {
		return response.Error(c, "Invalid symbol format", fiber.StatusBadRequest)
	}
	if !validation.IsValidTransactionType(body.TransactionType) {
		return response.Error(c, "transaction_type must be BUY or SELL", fiber.StatusBadRequest)
	}
	if body.Units <= 0 {
		return response.Error(c, "Units must be positive", fiber.StatusBadRequest)
	}
	if body.Price <= 0 || !money.HasAtMostTwoDecimals(body.Price) {
		return response.Error(c, "Price must be positive with at most 2 decimal places", fiber.StatusBadRequest)
	}
	txnDate, err := time.ParseInLocation(dateLayout, body.TransactionDate, time.Local)
	if err != nil {
		return response.Error(c, "transaction_date must be YYYY-MM-DD", fiber.StatusBadRequest)
	}
	// Shape-level date bound: a future date is rejected here, before any store
	// access. The service re-checks as part of the validation chain.
	if txnDate.After(time.Now()) {
		return response.Error(c, "Transaction date cannot be in the future", fiber.StatusBadRequest)
	}

	txn, err := h.Service.Create(c.Context(), txsvc.CreateInput{
		UserID:          userID,
		Symbol:          symbol,
		TransactionType: body.TransactionType,
		Units:           body.Units,
		Price:           body.Price,
		TransactionDate: txnDate,
	})
	if err != nil {
		var insufficient *txsvc.InsufficientHoldingsError
		switch {
		case errors.Is(err, txsvc.ErrUserNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		case errors.Is(err, txsvc.ErrInvalidSymbol),
			errors.Is(err, txsvc.ErrFutureDate):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.As(err, &insufficient):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
		}
	}

	h.Cache.Invalidate(c.Context(), cache.PortfolioKey(userID.String()))

	return response.SuccessCreated(c, "Transaction created", txn)
}

// List GET /transactions?user_id=&symbol=
func (h *Handlers) List(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return response.Error(c, "user_id query parameter is required", fiber.StatusBadRequest)
	}
	symbol := ""
	if raw := c.Query("symbol"); raw != "" {
		symbol = validation.NormalizeSymbol(raw)
	}

	txns, err := h.Service.ListByUser(c.Context(), userID, symbol)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Transactions retrieved", txns)
}

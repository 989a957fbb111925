package prices

import (
	"errors"

	pricesvc "wealthwise-backend/internal/application/prices"
	"wealthwise-backend/internal/pkg/money"
	"wealthwise-backend/internal/pkg/response"
	"wealthwise-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *pricesvc.Service
}

// Get GET /prices/:symbol
func (h *Handlers) Get(c *fiber.Ctx) error {
	symbol := validation.NormalizeSymbol(c.Params("symbol"))
	p, err := h.Service.Find(c.Context(), symbol)
	if err != nil {
		if errors.Is(err, pricesvc.ErrSymbolNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Price retrieved", p)
}

// List GET /prices
func (h *Handlers) List(c *fiber.Ctx) error {
	prices, err := h.Service.ListAll(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Prices retrieved", fiber.Map{"prices": prices})
}

// Update PUT /prices/:symbol — manual upsert, same path the fluctuation job uses.
func (h *Handlers) Update(c *fiber.Ctx) error {
	symbol := validation.NormalizeSymbol(c.Params("symbol"))
	if !validation.IsValidSymbol(symbol) {
		return response.Error(c, "Invalid symbol format", fiber.StatusBadRequest)
	}

	var body struct {
		Price float64 `json:"price"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest)
	}
	if body.Price < 0 || !money.HasAtMostTwoDecimals(body.Price) {
		return response.Error(c, "Price must be non-negative with at most 2 decimal places", fiber.StatusBadRequest)
	}

	p, err := h.Service.Upsert(c.Context(), symbol, body.Price)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	return response.Success(c, "Price updated", p)
}

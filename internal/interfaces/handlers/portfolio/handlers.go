package portfolio

import (
	"errors"

	pfsvc "wealthwise-backend/internal/application/portfolio"
	"wealthwise-backend/internal/application/users"
	"wealthwise-backend/internal/cache"
	"wealthwise-backend/internal/domain"
	"wealthwise-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *pfsvc.Service
	Users   *users.Service
	Cache   *cache.Service
}

// Summary GET /portfolio-summary?user_id=. Read-through: serve the cached
// valuation when present, otherwise compute and populate with TTL. A cache
// outage is never user-visible; the summary is recomputed directly.
func (h *Handlers) Summary(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return response.Error(c, "user_id query parameter is required", fiber.StatusBadRequest)
	}

	if _, err := h.Users.GetByID(c.Context(), userID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}

	key := cache.PortfolioKey(userID.String())
	var cached domain.PortfolioSummary
	if h.Cache.Get(c.Context(), key, &cached) {
		return response.Success(c, "Portfolio summary retrieved", cached)
	}

	summary, err := h.Service.Summary(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError)
	}
	h.Cache.Set(c.Context(), key, summary)

	return response.Success(c, "Portfolio summary retrieved", summary)
}

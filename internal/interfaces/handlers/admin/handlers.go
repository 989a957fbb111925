package admin

import (
	"wealthwise-backend/internal/pkg/response"
	"wealthwise-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Scheduler *scheduler.Scheduler
}

// UpdatePrices POST /admin/update-prices — runs one fluctuation pass
// synchronously, same code path as the periodic job.
func (h *Handlers) UpdatePrices(c *fiber.Ctx) error {
	h.Scheduler.RunPriceUpdate(c.Context())
	return response.Success(c, "Price update triggered successfully", nil)
}

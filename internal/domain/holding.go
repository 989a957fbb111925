package domain

// Holding is a user's current net position in one symbol, derived from the full
// transaction history. Not persisted.
type Holding struct {
	Symbol      string  `json:"symbol"`
	TotalUnits  int     `json:"total_units"`
	AverageCost float64 `json:"average_cost"`
	CostBasis   float64 `json:"cost_basis"`
}

// HoldingDetail is a Holding priced at the current market quote.
type HoldingDetail struct {
	Symbol              string  `json:"symbol"`
	TotalUnits          int     `json:"total_units"`
	AverageCost         float64 `json:"average_cost"`
	CurrentPrice        float64 `json:"current_price"`
	CurrentValue        float64 `json:"current_value"`
	UnrealizedPL        float64 `json:"unrealized_pl"`
	UnrealizedPLPercent float64 `json:"unrealized_pl_percent"`
}

// PortfolioSummary is the valuation report for one user. Derived and cached,
// never a source of truth.
type PortfolioSummary struct {
	UserID         string          `json:"user_id"`
	TotalInvested  float64         `json:"total_invested"`
	CurrentValue   float64         `json:"current_value"`
	TotalPL        float64         `json:"total_pl"`
	TotalPLPercent float64         `json:"total_pl_percent"`
	Holdings       []HoldingDetail `json:"holdings"`
}

package api

import (
	"context"
	"net/http"

	"github.com/Nihal1l/jobboard-client/internal/domain"
)

// PlanRecord is the catalog entry as the server sends it. Normalization
// into a view-ready Plan lives in the plans package.
type PlanRecord struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	YearlyPrice   float64    `json:"yearly_price"`
	IconType      string     `json:"icon_type"`
	IsRecommended bool       `json:"is_recommended"`
	Items         []PlanItem `json:"items"`
}

// PlanItem is one feature bullet of a plan.
type PlanItem struct {
	Text string `json:"text"`
}

// ListPremiumFeatures fetches the raw plan catalog. The catalog is public;
// no token is sent.
func (c *Client) ListPremiumFeatures(ctx context.Context) ([]PlanRecord, error) {
	var records []PlanRecord
	if err := c.do(ctx, http.MethodGet, c.url("/premiumFeatures/"), "", nil, &records); err != nil {
		return nil, &domain.FetchError{Resource: "plans", Err: err}
	}
	return records, nil
}

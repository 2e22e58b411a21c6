// Package plans loads the premium plan catalog and normalizes server
// records into the view-ready shape.
package plans

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
)

// yearlyMultiplier prices a year at ten monthly payments when the server
// does not supply a yearly price. Fixed policy, not per-plan configurable.
const yearlyMultiplier = 10

// defaultGlyph stands in for unknown icon_type values.
const defaultGlyph = "💎"

var glyphByIconType = map[string]string{
	"basic":        "🌱",
	"pro":          "⭐",
	"premium":      "👑",
	"professional": "💼",
	"enterprise":   "🚀",
}

var themeByName = map[string]string{
	"Basic":        "emerald",
	"Professional": "blue",
	"Premium":      "purple",
	"Pro":          "violet",
	"Enterprise":   "amber",
}

const defaultTheme = "blue"

// Catalog is the one API call the loader needs.
type Catalog interface {
	ListPremiumFeatures(ctx context.Context) ([]api.PlanRecord, error)
}

// Loader fetches and normalizes the plan catalog. A failed load leaves
// the catalog empty; retry is manual, never automatic.
type Loader struct {
	catalog Catalog
	logger  *infra.Logger
}

func NewLoader(catalog Catalog, logger *infra.Logger) *Loader {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Loader{catalog: catalog, logger: logger}
}

// Load fetches the catalog. Any transport or decode failure surfaces the
// distinct plans-unavailable state with an empty catalog.
func (l *Loader) Load(ctx context.Context) ([]domain.Plan, error) {
	records, err := l.catalog.ListPremiumFeatures(ctx)
	if err != nil {
		l.logger.Error().Err(err).Msg("plans: catalog load failed")
		return nil, fmt.Errorf("%w: %s", domain.ErrPlansUnavailable, api.ErrorMessage(err))
	}
	plans := make([]domain.Plan, 0, len(records))
	for _, r := range records {
		plans = append(plans, Normalize(r))
	}
	return plans, nil
}

// Normalize maps one server record to the display shape: glyph from
// icon_type with a default fallback, theme from the plan name, and a
// derived yearly price when the server omits one.
func Normalize(r api.PlanRecord) domain.Plan {
	glyph, ok := glyphByIconType[r.IconType]
	if !ok {
		glyph = defaultGlyph
	}
	theme, ok := themeByName[r.Name]
	if !ok {
		theme = defaultTheme
	}
	yearly := r.YearlyPrice
	if yearly <= 0 {
		yearly = r.Price * yearlyMultiplier
	}
	features := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		features = append(features, item.Text)
	}
	return domain.Plan{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		MonthlyPrice: r.Price,
		YearlyPrice:  yearly,
		Features:     features,
		Recommended:  r.IsRecommended,
		Glyph:        glyph,
		ThemeKey:     theme,
	}
}

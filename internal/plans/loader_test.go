package plans

import (
	"context"
	"errors"
	"testing"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type fakeCatalog struct {
	records []api.PlanRecord
	err     error
}

func (f *fakeCatalog) ListPremiumFeatures(context.Context) ([]api.PlanRecord, error) {
	return f.records, f.err
}

func TestNormalizeDerivesYearlyPrice(t *testing.T) {
	plan := Normalize(api.PlanRecord{ID: 1, Name: "Premium", Price: 499, IconType: "premium"})

	if plan.YearlyPrice != 4990 {
		t.Fatalf("yearly price = %v, want 4990", plan.YearlyPrice)
	}
	if plan.Glyph != "👑" {
		t.Fatalf("glyph = %q", plan.Glyph)
	}
	if plan.ThemeKey != "purple" {
		t.Fatalf("theme = %q", plan.ThemeKey)
	}
}

func TestNormalizeKeepsExplicitYearlyPrice(t *testing.T) {
	plan := Normalize(api.PlanRecord{Name: "Basic", Price: 100, YearlyPrice: 900})

	if plan.YearlyPrice != 900 {
		t.Fatalf("yearly price = %v, want the server value", plan.YearlyPrice)
	}
	if got := plan.YearlySavings(); got != 300 {
		t.Fatalf("yearly savings = %v, want 300", got)
	}
}

func TestNormalizeUnknownIconAndName(t *testing.T) {
	plan := Normalize(api.PlanRecord{Name: "Gold Rush", IconType: "gold"})

	if plan.Glyph != defaultGlyph {
		t.Fatalf("glyph = %q, want default", plan.Glyph)
	}
	if plan.ThemeKey != defaultTheme {
		t.Fatalf("theme = %q, want default", plan.ThemeKey)
	}
}

func TestNormalizeFlattensFeatureItems(t *testing.T) {
	plan := Normalize(api.PlanRecord{
		Name: "Pro",
		Items: []api.PlanItem{
			{Text: "Unlimited applications"},
			{Text: "Priority support"},
		},
	})

	if len(plan.Features) != 2 || plan.Features[0] != "Unlimited applications" {
		t.Fatalf("features = %v", plan.Features)
	}
}

func TestLoadFailureIsPlansUnavailable(t *testing.T) {
	loader := NewLoader(&fakeCatalog{err: errors.New("connection refused")}, nil)

	plans, err := loader.Load(context.Background())
	if !errors.Is(err, domain.ErrPlansUnavailable) {
		t.Fatalf("err = %v, want ErrPlansUnavailable", err)
	}
	if len(plans) != 0 {
		t.Fatalf("catalog should stay empty on failure, got %d plans", len(plans))
	}
}

func TestLoadRetryAfterFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("timeout")}
	loader := NewLoader(catalog, nil)

	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatal("first load should fail")
	}

	catalog.err = nil
	catalog.records = []api.PlanRecord{{ID: 3, Name: "Basic", Price: 50, IconType: "basic"}}

	plans, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if len(plans) != 1 || plans[0].Name != "Basic" {
		t.Fatalf("plans = %+v", plans)
	}
	if plans[0].Price(domain.CycleYearly) != 500 {
		t.Fatalf("yearly price = %v", plans[0].Price(domain.CycleYearly))
	}
}

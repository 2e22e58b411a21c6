package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
)

type fakeInitiateAPI struct {
	url     string
	err     error
	calls   int
	lastReq api.InitiateRequest
}

func (f *fakeInitiateAPI) PaymentInitiate(_ context.Context, _ string, req api.InitiateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.url, f.err
}

func premiumPlan() domain.Plan {
	return domain.Plan{ID: 2, Name: "Premium", MonthlyPrice: 499, YearlyPrice: 4990}
}

func TestInitiateRequiresSession(t *testing.T) {
	initAPI := &fakeInitiateAPI{url: "https://gw/pay"}
	initiator := NewInitiator(initAPI, "BDT", nil)

	_, err := initiator.Initiate(context.Background(), nil, premiumPlan(), domain.CycleMonthly)
	if err != domain.ErrAuthRequired {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if initAPI.calls != 0 {
		t.Fatal("initiate called without a session")
	}
}

func TestInitiateSendsCycleAmount(t *testing.T) {
	initAPI := &fakeInitiateAPI{url: "https://gw/pay"}
	initiator := NewInitiator(initAPI, "BDT", nil)

	url, err := initiator.Initiate(context.Background(), validSession(), premiumPlan(), domain.CycleYearly)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if url != "https://gw/pay" {
		t.Fatalf("url = %q", url)
	}
	req := initAPI.lastReq
	if req.Amount != 4990 || req.BillingCycle != "yearly" || req.Currency != "BDT" {
		t.Fatalf("request = %+v", req)
	}
	if req.PlanID != 2 || req.PlanName != "Premium" {
		t.Fatalf("request = %+v", req)
	}
}

func TestInitiateRejectsUnknownCycle(t *testing.T) {
	initAPI := &fakeInitiateAPI{}
	initiator := NewInitiator(initAPI, "", nil)

	_, err := initiator.Initiate(context.Background(), validSession(), premiumPlan(), domain.BillingCycle("weekly"))
	if err == nil {
		t.Fatal("want error for unsupported cycle")
	}
	if initAPI.calls != 0 {
		t.Fatal("initiate called with invalid cycle")
	}
}

func TestInitiateSurfacesServerMessage(t *testing.T) {
	initAPI := &fakeInitiateAPI{err: &api.StatusError{StatusCode: 502, Message: "gateway unavailable"}}
	initiator := NewInitiator(initAPI, "BDT", nil)

	_, err := initiator.Initiate(context.Background(), validSession(), premiumPlan(), domain.CycleMonthly)
	if err == nil || !strings.Contains(err.Error(), "gateway unavailable") {
		t.Fatalf("err = %v", err)
	}
}

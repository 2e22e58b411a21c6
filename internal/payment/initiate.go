package payment

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/api"
	"github.com/Nihal1l/jobboard-client/internal/domain"
	"github.com/Nihal1l/jobboard-client/internal/infra"
	"github.com/Nihal1l/jobboard-client/internal/session"
)

// InitiateAPI is the API surface the initiator needs.
type InitiateAPI interface {
	PaymentInitiate(ctx context.Context, token string, req api.InitiateRequest) (string, error)
}

// Initiator requests a gateway redirect URL for a chosen plan and cycle.
// On success the whole browser context is handed to the returned URL; on
// failure the caller clears its processing flag so the user can retry.
type Initiator struct {
	api      InitiateAPI
	currency string
	logger   *infra.Logger
}

func NewInitiator(initiateAPI InitiateAPI, currency string, logger *infra.Logger) *Initiator {
	if currency == "" {
		currency = "BDT"
	}
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Initiator{api: initiateAPI, currency: currency, logger: logger}
}

// Initiate asks the server for a redirect URL. It fails fast with
// ErrAuthRequired when no session exists; the caller redirects to login
// instead of calling the API.
func (i *Initiator) Initiate(ctx context.Context, sess *session.Session, plan domain.Plan, cycle domain.BillingCycle) (string, error) {
	if !sess.Valid() {
		return "", domain.ErrAuthRequired
	}
	if !cycle.Valid() {
		return "", fmt.Errorf("payment: unsupported billing cycle %q", cycle)
	}
	amount := plan.Price(cycle)
	i.logger.Info().
		Int64("plan_id", plan.ID).
		Str("cycle", string(cycle)).
		Float64("amount", amount).
		Msg("payment: initiating")

	redirectURL, err := i.api.PaymentInitiate(ctx, sess.Token(), api.InitiateRequest{
		PlanID:       plan.ID,
		PlanName:     plan.Name,
		Amount:       amount,
		BillingCycle: string(cycle),
		Currency:     i.currency,
	})
	if err != nil {
		return "", fmt.Errorf("payment initiation failed: %s", api.ErrorMessage(err))
	}
	return redirectURL, nil
}

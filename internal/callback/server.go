// Package callback serves the payment landing pages on a local port. The
// gateway redirects the browser here after checkout; the success route
// drives the reconciler, while cancel and fail are one-shot notifications.
package callback

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Nihal1l/jobboard-client/internal/middleware"
)

// NewRouter wires the three landing routes behind request-id and logging
// middleware.
func NewRouter(h *Handlers, logger zerolog.Logger) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(logger))

	r.Get("/payment/success", h.Success)
	r.Get("/payment/retry", h.Retry)
	r.Get("/payment/cancel", h.Cancel)
	r.Get("/payment/fail", h.Fail)

	return r
}

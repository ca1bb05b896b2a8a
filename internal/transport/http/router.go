package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cimillas/lottery-tickets/internal/metrics"
)

// RouterConfig wires the services behind the HTTP surface.
type RouterConfig struct {
	Availability AvailabilityProvider
	Rounds       RoundCreator
	Bookings     TicketBooker
	Views        ViewComposer
	Logger       *zap.Logger
	CORSOrigins  []string
}

// NewRouter builds the chi router with the full middleware stack and routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(metrics.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", HealthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/lottery", func(r chi.Router) {
		r.Get("/unsold-tickets", HandleUnsoldTickets(cfg.Availability))
		r.Post("/create-lottery", HandleCreateLottery(cfg.Rounds))
		r.Patch("/sell-tickets/{lotteryNo}", HandleSellTickets(cfg.Bookings))
		r.Get("/tickets", HandleTickets(cfg.Views))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	return r
}

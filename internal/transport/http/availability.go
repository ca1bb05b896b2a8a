package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// AvailabilityProvider is the minimal interface for the unsold-tickets endpoint.
type AvailabilityProvider interface {
	LatestAvailability(ctx context.Context) (domain.Round, error)
}

// HandleUnsoldTickets reports the latest round's available ticket numbers.
func HandleUnsoldTickets(svc AvailabilityProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, err := svc.LatestAvailability(r.Context())
		if err != nil {
			if err == domain.ErrRoundNotFound {
				writeError(w, http.StatusNotFound, codeRoundNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := unsoldTicketsResponse{
			LotteryNo:        round.RoundNo,
			AvailableTickets: round.AvailableTickets,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type unsoldTicketsResponse struct {
	LotteryNo        int64    `json:"lottery_no"`
	AvailableTickets []string `json:"available_tickets"`
}

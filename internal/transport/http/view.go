package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// ViewComposer is the minimal interface for the full ticket listing endpoint.
type ViewComposer interface {
	Compose(ctx context.Context, roundNo *int64) (domain.RoundView, error)
}

// HandleTickets returns the flattened ticket listing for a round. Without a
// lottery_no query parameter the latest round is used.
func HandleTickets(svc ViewComposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var roundNo *int64
		if raw := r.URL.Query().Get("lottery_no"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, codeInvalidRoundNo, "invalid lottery number")
				return
			}
			roundNo = &n
		}

		view, err := svc.Compose(r.Context(), roundNo)
		if err != nil {
			if err == domain.ErrRoundNotFound {
				writeError(w, http.StatusNotFound, codeRoundNotFound, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		resp := ticketsResponse{
			Tickets:     make([]ticketRecord, 0, len(view.Tickets)),
			BookedCount: view.BookedCount,
			SoldCount:   view.SoldCount,
		}
		for _, t := range view.Tickets {
			rec := ticketRecord{
				LotteryNo:    t.RoundNo,
				TicketNumber: t.TicketNumber,
				Availability: t.Availability,
				Sold:         t.Sold,
			}
			if t.User != "" {
				user := t.User
				rec.User = &user
			}
			resp.Tickets = append(resp.Tickets, rec)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type ticketRecord struct {
	LotteryNo    int64   `json:"lottery_no"`
	TicketNumber string  `json:"ticket_number"`
	Availability bool    `json:"availability"`
	Sold         bool    `json:"sold"`
	User         *string `json:"user"`
}

type ticketsResponse struct {
	Tickets     []ticketRecord `json:"tickets"`
	BookedCount int            `json:"booked_count"`
	SoldCount   int            `json:"sold_count"`
}

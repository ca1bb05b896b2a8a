package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// RoundCreator is the minimal interface for the create-lottery endpoint.
type RoundCreator interface {
	CreateRound(ctx context.Context, count int) (int64, error)
}

// HandleCreateLottery creates a fresh round of uniquely numbered tickets.
func HandleCreateLottery(svc RoundCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLotteryRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.TotalTickets <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidTicketCount, domain.ErrInvalidTicketCount.Error())
			return
		}

		roundNo, err := svc.CreateRound(r.Context(), req.TotalTickets)
		if err != nil {
			switch err {
			case domain.ErrInvalidTicketCount:
				writeError(w, http.StatusBadRequest, codeInvalidTicketCount, err.Error())
			case domain.ErrRoundConflict:
				writeError(w, http.StatusConflict, codeRoundConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := createLotteryResponse{
			LotteryNo: roundNo,
			Message:   fmt.Sprintf("successfully created lottery %d", roundNo),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type createLotteryRequest struct {
	TotalTickets int `json:"total_tickets"`
}

type createLotteryResponse struct {
	LotteryNo int64  `json:"lottery_no"`
	Message   string `json:"message"`
}

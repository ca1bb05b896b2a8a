package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cimillas/lottery-tickets/internal/app"
	"github.com/cimillas/lottery-tickets/internal/domain"
)

// TicketBooker is the minimal interface for the sell-tickets endpoint.
type TicketBooker interface {
	Book(ctx context.Context, in app.BookInput) (app.BookResult, error)
}

// HandleSellTickets books the requested ticket numbers for the supplied user.
func HandleSellTickets(svc TicketBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundNo, err := strconv.ParseInt(chi.URLParam(r, "lotteryNo"), 10, 64)
		if err != nil || roundNo <= 0 {
			writeError(w, http.StatusBadRequest, codeInvalidRoundNo, "invalid lottery number")
			return
		}

		var req sellTicketsRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if len(req.TicketNumbers) == 0 {
			writeError(w, http.StatusBadRequest, codeNoTicketNumbers, domain.ErrNoTicketNumbers.Error())
			return
		}
		if req.UserInformation.Email == "" {
			writeError(w, http.StatusBadRequest, codeEmailRequired, domain.ErrEmailRequired.Error())
			return
		}

		result, err := svc.Book(r.Context(), app.BookInput{
			RoundNo:       roundNo,
			TicketNumbers: req.TicketNumbers,
			Profile: domain.Profile{
				Email:    req.UserInformation.Email,
				FullName: req.UserInformation.FullName,
				Contact:  req.UserInformation.Contact,
			},
		})
		if err != nil {
			var unavailable *domain.TicketsUnavailableError
			switch {
			case errors.As(err, &unavailable):
				writeError(w, http.StatusConflict, codeTicketsUnavailable, unavailable.Error())
			case err == domain.ErrRoundNotFound:
				writeError(w, http.StatusNotFound, codeRoundNotFound, err.Error())
			case err == domain.ErrEmailRequired:
				writeError(w, http.StatusBadRequest, codeEmailRequired, err.Error())
			case err == domain.ErrNoTicketNumbers:
				writeError(w, http.StatusBadRequest, codeNoTicketNumbers, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		resp := sellTicketsResponse{
			Message:                 fmt.Sprintf("successfully sold tickets for lottery %d", roundNo),
			UpdatedAvailableTickets: result.UpdatedAvailable,
		}
		if result.NotifyErr != nil {
			resp.Warning = "booking confirmed but the confirmation email could not be sent"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type sellTicketsRequest struct {
	TicketNumbers   []string        `json:"ticket_numbers"`
	UserInformation userInformation `json:"user_information"`
}

type userInformation struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Contact  string `json:"contact"`
}

type sellTicketsResponse struct {
	Message                 string   `json:"message"`
	UpdatedAvailableTickets []string `json:"updated_available_tickets"`
	Warning                 string   `json:"warning,omitempty"`
}

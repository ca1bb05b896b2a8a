package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cimillas/lottery-tickets/internal/app"
	"github.com/cimillas/lottery-tickets/internal/domain"
)

type stubBooker struct {
	result app.BookResult
	err    error
	gotIn  app.BookInput
}

func (s *stubBooker) Book(_ context.Context, in app.BookInput) (app.BookResult, error) {
	s.gotIn = in
	if s.err != nil {
		return app.BookResult{}, s.err
	}
	return s.result, nil
}

func newSellRequest(lotteryNo, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/lottery/sell-tickets/"+lotteryNo, strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("lotteryNo", lotteryNo)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleSellTickets(t *testing.T) {
	t.Parallel()

	validBody := `{"ticket_numbers":["001","002"],"user_information":{"email":"a@example.com","full_name":"User A"}}`

	tests := []struct {
		name           string
		lotteryNo      string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			lotteryNo:      "1",
			body:           validBody,
			expectedStatus: http.StatusOK,
			expectedSubstr: `"updated_available_tickets":["003"]`,
		},
		{
			name:           "invalid lottery number",
			lotteryNo:      "abc",
			body:           validBody,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_round_no",
		},
		{
			name:           "invalid json",
			lotteryNo:      "1",
			body:           `{"ticket_numbers":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "invalid_request_body",
		},
		{
			name:           "empty ticket numbers",
			lotteryNo:      "1",
			body:           `{"ticket_numbers":[],"user_information":{"email":"a@example.com"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "no_ticket_numbers",
		},
		{
			name:           "missing email",
			lotteryNo:      "1",
			body:           `{"ticket_numbers":["001"],"user_information":{"full_name":"User A"}}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "email_required",
		},
		{
			name:           "round not found",
			lotteryNo:      "9",
			body:           validBody,
			serviceErr:     domain.ErrRoundNotFound,
			expectedStatus: http.StatusNotFound,
			expectedSubstr: "round_not_found",
		},
		{
			name:           "tickets unavailable",
			lotteryNo:      "1",
			body:           validBody,
			serviceErr:     &domain.TicketsUnavailableError{RoundNo: 1, TicketNumbers: []string{"002"}},
			expectedStatus: http.StatusConflict,
			expectedSubstr: "tickets_unavailable",
		},
		{
			name:           "internal error",
			lotteryNo:      "1",
			body:           validBody,
			serviceErr:     errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubBooker{
				result: app.BookResult{
					TicketNumbers:    []string{"001", "002"},
					UpdatedAvailable: []string{"003"},
				},
				err: tt.serviceErr,
			}

			rec := httptest.NewRecorder()
			HandleSellTickets(svc).ServeHTTP(rec, newSellRequest(tt.lotteryNo, tt.body))

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("warning is surfaced when notification fails", func(t *testing.T) {
		svc := &stubBooker{
			result: app.BookResult{
				UpdatedAvailable: []string{"003"},
				NotifyErr:        errors.New("smtp down"),
			},
		}

		rec := httptest.NewRecorder()
		HandleSellTickets(svc).ServeHTTP(rec, newSellRequest("1", validBody))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"warning"`) {
			t.Fatalf("expected a warning in the response, got %s", rec.Body.String())
		}
	})

	t.Run("request fields reach the service", func(t *testing.T) {
		svc := &stubBooker{}
		rec := httptest.NewRecorder()
		HandleSellTickets(svc).ServeHTTP(rec, newSellRequest("5", validBody))

		if svc.gotIn.RoundNo != 5 {
			t.Fatalf("expected round 5, got %d", svc.gotIn.RoundNo)
		}
		if svc.gotIn.Profile.Email != "a@example.com" {
			t.Fatalf("expected email to be passed through, got %q", svc.gotIn.Profile.Email)
		}
		if len(svc.gotIn.TicketNumbers) != 2 {
			t.Fatalf("expected 2 ticket numbers, got %d", len(svc.gotIn.TicketNumbers))
		}
	})
}

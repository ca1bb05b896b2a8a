package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeEmailRequired      = "email_required"
	codeInvalidTicketCount = "invalid_ticket_count"
	codeNoTicketNumbers    = "no_ticket_numbers"
	codeInvalidRoundNo     = "invalid_round_no"
	codeRoundNotFound      = "round_not_found"
	codeTicketsUnavailable = "tickets_unavailable"
	codeRoundConflict      = "round_conflict"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

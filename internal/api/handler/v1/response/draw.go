package response

import (
	"campaign-raffle-api/internal/domain"
)

// DrawResponse is the operator-facing outcome of one drawing. Partial is
// explicit so the UI never claims a full success when concurrent draws
// claimed part of the selection.
type DrawResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Requested int             `json:"requested"`
	Partial   bool            `json:"partial"`
	Winners   []domain.Winner `json:"winners"`
}

type EligibleTicketsResponse struct {
	TicketIDs []uint `json:"ticket_ids"`
}

type SubmitInvoiceResponse struct {
	Message string          `json:"message"`
	Tickets []domain.Ticket `json:"tickets"`
}

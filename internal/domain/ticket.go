package domain

import "time"

// Ticket is one entry in the raffle pool, generated from a validated
// invoice. DrawnAt is set exactly once, when the ticket wins a drawing.
type Ticket struct {
	ID            uint       `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CNPJ          string     `json:"cnpj"`
	CreatedAt     time.Time  `json:"created_at"`
	DrawnAt       *time.Time `json:"drawn_at"`
}

func (t Ticket) InvoiceKey() InvoiceKey {
	return InvoiceKey{Number: t.InvoiceNumber, CNPJ: t.CNPJ}
}

package domain

import "time"

// DrawRecord is the durable proof that a specific ticket won a specific
// drawing. At most one record may ever reference a given ticket.
type DrawRecord struct {
	ID         uint      `json:"id"`
	TicketID   uint      `json:"ticket_id"`
	OperatorID string    `json:"operator_id"`
	DrawnAt    time.Time `json:"drawn_at"`
}

// Winner is one drawn ticket together with the display metadata the
// operator screen shows. Missing metadata degrades to placeholders, it
// never fails the draw.
type Winner struct {
	TicketID      uint   `json:"ticket_id"`
	InvoiceNumber string `json:"invoice_number"`
	CNPJ          string `json:"cnpj"`
	LegalName     string `json:"legal_name"`
	TradeName     string `json:"trade_name"`
	BranchCode    string `json:"branch_code"`
	WhatsApp      string `json:"whatsapp"`
}

// DrawResult is the outcome of one drawing. Partial is set when fewer
// winners could be recorded than requested because concurrent draws
// claimed some of the selected tickets first.
type DrawResult struct {
	Requested int      `json:"requested"`
	Winners   []Winner `json:"winners"`
	Partial   bool     `json:"partial"`
}

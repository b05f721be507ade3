package domain

import "time"

// InvoiceKey is the composite identity of an invoice: the same invoice
// number may repeat across organizations but not within one.
type InvoiceKey struct {
	Number string
	CNPJ   string
}

type Invoice struct {
	Number        string     `json:"number"`
	CNPJ          string     `json:"cnpj"`
	Amount        float64    `json:"amount"`
	IssueDate     *time.Time `json:"issue_date"`
	SupplierCount int        `json:"supplier_count"`
	BranchCode    string     `json:"branch_code"`
	Valid         bool       `json:"valid"`
	Reason        string     `json:"reason"`
	UsedForTicket bool       `json:"used_for_ticket"`
}

func (i Invoice) Key() InvoiceKey {
	return InvoiceKey{Number: i.Number, CNPJ: i.CNPJ}
}

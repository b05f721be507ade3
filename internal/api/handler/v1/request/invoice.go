package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SubmitInvoiceRequest struct {
	InvoiceNumber string `json:"invoice_number"`
}

func (req *SubmitInvoiceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InvoiceNumber, validation.Required, validation.Length(1, 44)),
	)
}

type InvoiceRow struct {
	Number        string  `json:"number"`
	CNPJ          string  `json:"cnpj"`
	Amount        float64 `json:"amount"`
	IssueDate     string  `json:"issue_date"` // "2006-01-02", optional
	SupplierCount int     `json:"supplier_count"`
	BranchCode    string  `json:"branch_code"`
}

func (row InvoiceRow) Validate() error {
	return validation.ValidateStruct(
		&row,
		validation.Field(&row.Number, validation.Required, validation.Length(1, 44)),
		validation.Field(&row.CNPJ, validation.Required, validation.Match(cnpjPattern)),
		validation.Field(&row.Amount, validation.Min(0.0)),
		validation.Field(&row.IssueDate, validation.Date("2006-01-02")),
		validation.Field(&row.SupplierCount, validation.Min(0)),
	)
}

type ImportInvoicesRequest struct {
	Invoices []InvoiceRow `json:"invoices"`
}

func (req *ImportInvoicesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Invoices, validation.Required),
	)
}

type SetInvoiceValidityRequest struct {
	Valid  *bool  `json:"valid"`
	Reason string `json:"reason"`
}

func (req *SetInvoiceValidityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Valid, validation.NotNil),
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

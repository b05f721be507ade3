package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateOrganizationRequest struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
}

func (req *CreateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CNPJ, validation.Required, validation.Match(cnpjPattern)),
		validation.Field(&req.LegalName, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.TradeName, validation.Length(0, 200)),
	)
}

type UpdateOrganizationRequest struct {
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
}

func (req *UpdateOrganizationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.LegalName, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.TradeName, validation.Length(0, 200)),
	)
}

type OrganizationRow struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
}

// ImportOrganizationsRequest carries already-parsed spreadsheet rows; the
// server never sees the spreadsheet itself.
type ImportOrganizationsRequest struct {
	Organizations []OrganizationRow `json:"organizations"`
}

func (req *ImportOrganizationsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Organizations, validation.Required),
	)
}

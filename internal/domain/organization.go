package domain

// Organization is a registered business, identified by its 14-digit CNPJ.
type Organization struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legal_name"`
	TradeName string `json:"trade_name"`
	Deleted   bool   `json:"deleted"`
}

package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RunDrawRequest struct {
	Quantity int `json:"quantity"`
}

func (req *RunDrawRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

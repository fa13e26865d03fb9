package domain

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the transaction against its declared constraints.
func (t *Transaction) Validate() error {
	return validate.Struct(t)
}

// Validate checks the metadata against its declared constraints.
func (m *DashboardMetadata) Validate() error {
	return validate.Struct(m)
}

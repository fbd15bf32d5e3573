package domain

import "errors"

var (
	ErrScreeningNotFound = errors.New("screening not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrInvalidRate       = errors.New("rate must be between 0 and 1")
)

package core

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("validation error")
	ErrPaymentDeclined = errors.New("payment declined")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden operation")
)

package service

import "errors"

var (
	ErrItemNotInCatalog    = errors.New("item is not in the restaurant catalog")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrSubmissionInFlight  = errors.New("an order submission is already in progress")
	ErrPaymentNotSupported = errors.New("payment method does not support the configured currency")
)

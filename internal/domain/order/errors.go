package order

import "errors"

var (
	ErrEmptyCart          = errors.New("your cart is empty")
	ErrInvalidRecipient   = errors.New("invalid whatsapp number")
	ErrRecipientNotStored = errors.New("recipient not stored")
)

package order

import "strings"

const (
	DefaultRecipient = "919876543210"
	CountryCode      = "91"
	localNumberLen   = 10
	minRecipientLen  = 11
	maxRecipientLen  = 15
)

// Link is a pre-filled messaging deep link for manual order confirmation.
type Link struct {
	URL       string
	Recipient string
	Message   string
	Total     int64
	Items     int
}

// NormalizeRecipient keeps digits only and prefixes the country code to a
// bare ten-digit local number. Anything else passes through unchanged.
func NormalizeRecipient(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == localNumberLen {
		return CountryCode + digits
	}
	return digits
}

func ValidateRecipient(normalized string) error {
	if len(normalized) < minRecipientLen || len(normalized) > maxRecipientLen {
		return ErrInvalidRecipient
	}
	return nil
}

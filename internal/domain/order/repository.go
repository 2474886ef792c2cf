package order

import "context"

// RecipientRepository returns ErrRecipientNotStored when no recipient was configured.
type RecipientRepository interface {
	Recipient(ctx context.Context) (string, error)
	SetRecipient(ctx context.Context, recipient string) error
}

package admin

import "context"

type Repository interface {
	LoadSession(ctx context.Context) (Session, error)
	SaveSession(ctx context.Context, s Session) error
	ClearSession(ctx context.Context) error
	// PasswordHash returns ErrPasswordNotStored when the default password applies.
	PasswordHash(ctx context.Context) (string, error)
	SetPasswordHash(ctx context.Context, hash string) error
	ClearPassword(ctx context.Context) error
}

package kvstore

import (
	"context"
	"errors"
	"strconv"

	domadmin "example.com/aquapure-store/internal/domain/admin"
	"example.com/aquapure-store/internal/infra/kv"
)

type AdminRepository struct {
	store kv.Store
}

func NewAdminRepository(store kv.Store) *AdminRepository {
	return &AdminRepository{store: store}
}

// LoadSession treats missing or unparseable keys as a logged-out session.
func (r *AdminRepository) LoadSession(ctx context.Context) (domadmin.Session, error) {
	flag, err := r.store.Get(ctx, kv.KeyAdminLoggedIn)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domadmin.Session{}, nil
		}
		return domadmin.Session{}, err
	}

	loginTime, err := getMillis(ctx, r.store, kv.KeyAdminLoginTime)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domadmin.Session{}, nil
		}
		return domadmin.Session{}, err
	}

	id, err := r.store.Get(ctx, kv.KeyAdminSessionID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domadmin.Session{}, nil
		}
		return domadmin.Session{}, err
	}

	return domadmin.Session{
		ID:        id,
		LoggedIn:  flag == "true",
		LoginTime: loginTime,
	}, nil
}

func (r *AdminRepository) SaveSession(ctx context.Context, s domadmin.Session) error {
	if err := r.store.Set(ctx, kv.KeyAdminSessionID, s.ID); err != nil {
		return err
	}
	if err := r.store.Set(ctx, kv.KeyAdminLoggedIn, strconv.FormatBool(s.LoggedIn)); err != nil {
		return err
	}
	return setMillis(ctx, r.store, kv.KeyAdminLoginTime, s.LoginTime)
}

func (r *AdminRepository) ClearSession(ctx context.Context) error {
	for _, key := range []string{kv.KeyAdminLoggedIn, kv.KeyAdminLoginTime, kv.KeyAdminSessionID} {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (r *AdminRepository) PasswordHash(ctx context.Context) (string, error) {
	hash, err := r.store.Get(ctx, kv.KeyAdminPassword)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", domadmin.ErrPasswordNotStored
		}
		return "", err
	}
	if hash == "" {
		return "", domadmin.ErrPasswordNotStored
	}
	return hash, nil
}

func (r *AdminRepository) SetPasswordHash(ctx context.Context, hash string) error {
	return r.store.Set(ctx, kv.KeyAdminPassword, hash)
}

func (r *AdminRepository) ClearPassword(ctx context.Context) error {
	return r.store.Delete(ctx, kv.KeyAdminPassword)
}

var _ domadmin.Repository = (*AdminRepository)(nil)

package admin

import "errors"

var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidCredential      = errors.New("current password is incorrect")
	ErrSessionExpired         = errors.New("session expired")
	ErrPasswordFieldsRequired = errors.New("please fill all password fields")
	ErrPasswordMismatch       = errors.New("new passwords do not match")
	ErrWeakPassword           = errors.New("password must be at least 6 characters")
	ErrPasswordUnchanged      = errors.New("new password cannot be same as current password")
	ErrPasswordNotStored      = errors.New("password not stored")
)

package http

import (
	"errors"
	"net/http"

	domadmin "example.com/aquapure-store/internal/domain/admin"
	authuc "example.com/aquapure-store/internal/usecase/auth"
)

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type passwordStrengthRequest struct {
	Password string `json:"password"`
}

func mapLogin(res *authuc.LoginResult) map[string]any {
	return map[string]any{
		"token":      res.Token,
		"login_time": res.LoginTime,
		"expires_at": res.ExpiresAt,
	}
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	res, err := a.authSvc.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, domadmin.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Message: "Incorrect password!"})
			return
		}
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapLogin(res))
}

func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	session := getSession(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, mapSession(session))
}

func (a *API) handleRenewSession(w http.ResponseWriter, r *http.Request) {
	res, err := a.authSvc.Renew(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	resp := mapLogin(res)
	resp["message"] = "Session renewed!"
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := a.authSvc.Logout(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	err := a.authSvc.ChangePassword(r.Context(), authuc.ChangePasswordInput{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
		Confirm: req.ConfirmPassword,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Password changed successfully! Please login again with new password.",
	})
}

func (a *API) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := a.authSvc.ResetPassword(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Password reset to default: " + domadmin.DefaultPassword,
	})
}

func (a *API) handlePasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req passwordStrengthRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}
	strength := domadmin.PasswordStrength(req.Password)
	writeJSON(w, http.StatusOK, map[string]any{
		"score": domadmin.PasswordScore(req.Password),
		"level": int(strength),
		"label": strength.String(),
	})
}

package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

const maxImportBytes = 8 << 20

type recipientRequest struct {
	Recipient string `json:"recipient" validate:"required"`
}

func (a *API) handleExport(w http.ResponseWriter, r *http.Request) {
	exp, err := a.catalogSvc.Export(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if _, err := a.settingsSvc.RecordBackup(r.Context()); err != nil {
		a.logger.Warn("recording backup time failed", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exp.Data)
}

// handleImport replaces the catalog with the uploaded product array. Without
// confirm=true it only reports what would be imported.
func (a *API) handleImport(w http.ResponseWriter, r *http.Request) {
	confirm, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		respondError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	res, err := a.catalogSvc.Import(r.Context(), data, confirm)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := map[string]any{
		"count":   res.Count,
		"applied": res.Applied,
	}
	if res.Applied {
		resp["message"] = "Products imported successfully!"
	} else {
		resp["message"] = fmt.Sprintf("This will replace all current products with %d imported products. Repeat with confirm=true to continue.", res.Count)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleClearData(w http.ResponseWriter, r *http.Request) {
	if err := a.settingsSvc.ClearAll(r.Context()); err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "All data cleared successfully!"})
}

func (a *API) handleStorage(w http.ResponseWriter, r *http.Request) {
	st, err := a.settingsSvc.Storage(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := map[string]any{
		"usage_bytes": st.UsageBytes,
		"usage":       fmt.Sprintf("%.2f KB", float64(st.UsageBytes)/1024),
		"quota_bytes": st.QuotaBytes,
		"last_backup": nil,
	}
	if st.LastBackup != nil {
		resp["last_backup"] = st.LastBackup.UTC()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleGetRecipient(w http.ResponseWriter, r *http.Request) {
	recipient, err := a.checkoutSvc.Recipient(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"recipient": recipient})
}

func (a *API) handleSetRecipient(w http.ResponseWriter, r *http.Request) {
	var req recipientRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	recipient, err := a.checkoutSvc.SetRecipient(r.Context(), req.Recipient)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recipient": recipient,
		"message":   "WhatsApp number saved successfully!",
	})
}

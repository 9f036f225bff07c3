package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/device-registry/internal/application/auth"
	"github.com/device-registry/internal/domain"
)

// MsgAuthenticated is the exact body the CLI checks for.
const MsgAuthenticated = "OK CLI authenticated"

// AuthHandler handles device API-key authentication.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.AuthRequest{
		Email:      q.Get("email"),
		DeviceName: deviceNameParam(r),
		DeviceType: q.Get("device_type"),
		APIKey:     q.Get("api_key"),
	}

	res, err := h.svc.Authenticate(r.Context(), req)

	// The outcome decides the response; err only matters when no decision was reached.
	switch res.Outcome {
	case "":
		if err == nil || errors.Is(err, domain.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "Missing parameters. Required: email, device_name, api_key")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database Error: "+err.Error())
	case domain.AuthAuthenticated:
		writeJSON(w, http.StatusOK, ResultEnvelope{Result: MsgAuthenticated})
	case domain.AuthUnauthorized:
		writeError(w, http.StatusUnauthorized, "Authentication failed: Invalid API Key")
	case domain.AuthUserNotFound:
		writeError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", req.Email))
	case domain.AuthDeviceNotFound:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Device %s not found for this user", req.DeviceName))
	default:
		detail := res.Detail
		if detail == "" && err != nil {
			detail = err.Error()
		}
		writeError(w, http.StatusInternalServerError, "Database Error: "+detail)
	}
}

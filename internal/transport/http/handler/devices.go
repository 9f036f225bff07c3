package handler

import (
	"fmt"
	"net/http"

	"github.com/device-registry/internal/application/device"
	"github.com/device-registry/internal/domain"
)

// DeviceHandler handles device registry endpoints.
type DeviceHandler struct {
	svc device.Service
}

func NewDeviceHandler(svc device.Service) *DeviceHandler { return &DeviceHandler{svc: svc} }

func (h *DeviceHandler) List(w http.ResponseWriter, r *http.Request) {
	devices, err := h.svc.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		httpError(w, err)
		return
	}
	if devices == nil {
		devices = []domain.Device{}
	}
	writeJSON(w, http.StatusOK, devices)
}

func (h *DeviceHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	d, err := domain.NewDeviceFromFields(fields)
	if err != nil {
		httpError(w, err)
		return
	}
	created, err := h.svc.Create(r.Context(), d)
	if err != nil {
		httpError(w, err)
		return
	}
	resp := ResultEnvelope{Result: "Device added successfully!"}
	if d.DeviceAPIKey == "" {
		resp.DeviceAPIKey = created.DeviceAPIKey
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Update takes the identity pair from the body alongside the fields to set.
func (h *DeviceHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email, ok1 := fields[domain.FieldOwnerEmail].(string)
	name, ok2 := fields[domain.FieldDeviceName].(string)
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "owner_email and device_name required")
		return
	}
	if err := h.svc.Update(r.Context(), email, name, domain.DeviceUpdate(fields)); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultEnvelope{Result: "Device updated successfully!"})
}

func (h *DeviceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := deviceNameParam(r)
	if err := h.svc.Delete(r.Context(), r.URL.Query().Get("email"), name); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultEnvelope{Result: fmt.Sprintf("Device %s deleted.", name)})
}

package auth

import (
	"context"
	"crypto/subtle"

	"github.com/device-registry/internal/domain"
	"github.com/device-registry/internal/logger"
	"github.com/device-registry/internal/pkg/validate"
)

// Service decides whether a device presented the right API key.
type Service interface {
	// Authenticate returns a non-nil error only for invalid input or a store
	// failure; the latter also comes back as an AuthStoreError result.
	Authenticate(ctx context.Context, req domain.AuthRequest) (domain.AuthResult, error)
}

type deviceLister interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Device, error)
}

type service struct {
	devices deviceLister
	logger  *logger.Logger
}

func NewService(devices deviceLister, logger *logger.Logger) Service {
	return &service{devices: devices, logger: logger}
}

func (s *service) Authenticate(ctx context.Context, req domain.AuthRequest) (domain.AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return domain.AuthResult{}, err
	}

	devices, err := s.devices.ListByOwner(ctx, req.Email)
	if err != nil {
		s.logger.Error("Auth service: failed to list devices", "email", req.Email, "error", err.Error())
		return domain.AuthResult{Outcome: domain.AuthStoreError, Detail: err.Error()}, err
	}
	if len(devices) == 0 {
		return domain.AuthResult{Outcome: domain.AuthUserNotFound}, nil
	}

	match := findDevice(devices, req)
	if match == nil {
		return domain.AuthResult{Outcome: domain.AuthDeviceNotFound}, nil
	}

	if subtle.ConstantTimeCompare([]byte(match.DeviceAPIKey), []byte(req.APIKey)) != 1 {
		s.logger.Info("Auth service: key mismatch",
			"email", req.Email,
			"device", req.DeviceName,
			"strict", req.Strict())
		return domain.AuthResult{Outcome: domain.AuthUnauthorized}, nil
	}
	return domain.AuthResult{Outcome: domain.AuthAuthenticated}, nil
}

// findDevice returns the first device in store order matching the request.
// In loose mode only the name is compared.
func findDevice(devices []domain.Device, req domain.AuthRequest) *domain.Device {
	for i := range devices {
		d := &devices[i]
		if d.DeviceName != req.DeviceName {
			continue
		}
		if req.Strict() && d.DeviceType != req.DeviceType {
			continue
		}
		return d
	}
	return nil
}

package device

import (
	"context"
	"fmt"

	"github.com/device-registry/internal/domain"
	"github.com/device-registry/internal/logger"
	"github.com/device-registry/internal/pkg/apikey"
	"github.com/device-registry/internal/pkg/validate"
)

// Service is the device registry: CRUD over records keyed by (owner email, device name).
type Service interface {
	List(ctx context.Context, ownerEmail string) ([]domain.Device, error)
	// Create registers d and returns the stored record. A key is generated when
	// d carries none.
	Create(ctx context.Context, d domain.Device) (*domain.Device, error)
	Update(ctx context.Context, ownerEmail, deviceName string, fields domain.DeviceUpdate) error
	// Delete succeeds whether or not the record exists.
	Delete(ctx context.Context, ownerEmail, deviceName string) error
}

type deviceStore interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Device, error)
	Get(ctx context.Context, ownerEmail, deviceName string) (*domain.Device, error)
	PutIfAbsent(ctx context.Context, d *domain.Device) error
	Update(ctx context.Context, ownerEmail, deviceName string, updates map[string]interface{}) error
	Delete(ctx context.Context, ownerEmail, deviceName string) error
}

type service struct {
	repo   deviceStore
	logger *logger.Logger
	newKey func() (string, error)
}

func NewService(repo deviceStore, logger *logger.Logger) Service {
	return &service{repo: repo, logger: logger, newKey: apikey.New}
}

func (s *service) List(ctx context.Context, ownerEmail string) ([]domain.Device, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("email required: %w", domain.ErrBadRequest)
	}
	devices, err := s.repo.ListByOwner(ctx, ownerEmail)
	if err != nil {
		s.logger.Error("Device service: failed to list devices", "email", ownerEmail, "error", err.Error())
		return nil, err
	}
	return devices, nil
}

func (s *service) Create(ctx context.Context, d domain.Device) (*domain.Device, error) {
	if err := validate.Struct(d); err != nil {
		return nil, err
	}
	if d.DeviceAPIKey == "" {
		key, err := s.newKey()
		if err != nil {
			return nil, err
		}
		d.DeviceAPIKey = key
	}
	if err := s.repo.PutIfAbsent(ctx, &d); err != nil {
		s.logger.Info("Device service: create rejected",
			"email", d.OwnerEmail,
			"device", d.DeviceName,
			"error", err.Error())
		return nil, err
	}
	s.logger.Debug("Device service: device created", "email", d.OwnerEmail, "device", d.DeviceName)
	return &d, nil
}

func (s *service) Update(ctx context.Context, ownerEmail, deviceName string, fields domain.DeviceUpdate) error {
	if ownerEmail == "" || deviceName == "" {
		return fmt.Errorf("email and device_name required: %w", domain.ErrBadRequest)
	}
	updates := map[string]interface{}{}
	for k, v := range fields {
		if k == "" {
			return fmt.Errorf("empty field name: %w", domain.ErrBadRequest)
		}
		// The identity pair is the lookup key and never rewritten.
		if domain.IsIdentityField(k) {
			continue
		}
		updates[k] = v
	}
	if err := domain.CheckKnownFieldTypes(updates); err != nil {
		return err
	}
	if len(updates) == 0 {
		_, err := s.repo.Get(ctx, ownerEmail, deviceName)
		return err
	}
	if err := s.repo.Update(ctx, ownerEmail, deviceName, updates); err != nil {
		s.logger.Info("Device service: update failed",
			"email", ownerEmail,
			"device", deviceName,
			"error", err.Error())
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, ownerEmail, deviceName string) error {
	if ownerEmail == "" || deviceName == "" {
		return fmt.Errorf("email and device_name required: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Delete(ctx, ownerEmail, deviceName); err != nil {
		s.logger.Error("Device service: failed to delete device",
			"email", ownerEmail,
			"device", deviceName,
			"error", err.Error())
		return err
	}
	return nil
}

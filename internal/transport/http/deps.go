package http

import (
	"context"

	"github.com/device-registry/internal/domain"
	"github.com/device-registry/internal/logger"
)

// DeviceRepository is the minimal interface the router requires from a device store.
// Both the DynamoDB and in-memory repositories satisfy it.
type DeviceRepository interface {
	ListByOwner(ctx context.Context, ownerEmail string) ([]domain.Device, error)
	Get(ctx context.Context, ownerEmail, deviceName string) (*domain.Device, error)
	// PutIfAbsent must check and insert atomically.
	PutIfAbsent(ctx context.Context, d *domain.Device) error
	Update(ctx context.Context, ownerEmail, deviceName string, updates map[string]interface{}) error
	Delete(ctx context.Context, ownerEmail, deviceName string) error
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	DeviceRepo DeviceRepository
	Logger     *logger.Logger
}

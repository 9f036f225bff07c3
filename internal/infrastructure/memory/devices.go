// Package memory is an in-process device store with the same contract as the
// DynamoDB repository. It backs STORE_BACKEND=memory and end-to-end tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/device-registry/internal/domain"
)

// DeviceRepo keeps devices per owner, keyed by device name.
type DeviceRepo struct {
	mu      sync.RWMutex
	devices map[string]map[string]domain.Device
}

func NewDeviceRepo() *DeviceRepo {
	return &DeviceRepo{devices: make(map[string]map[string]domain.Device)}
}

// ListByOwner returns the owner's devices ordered by device name, matching the
// range-key order of the DynamoDB table.
func (r *DeviceRepo) ListByOwner(_ context.Context, ownerEmail string) ([]domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := r.devices[ownerEmail]
	out := make([]domain.Device, 0, len(owned))
	for _, d := range owned {
		out = append(out, clone(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceName < out[j].DeviceName })
	return out, nil
}

func (r *DeviceRepo) Get(_ context.Context, ownerEmail, deviceName string) (*domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.devices[ownerEmail][deviceName]
	if !ok {
		return nil, fmt.Errorf("device not found: %w", domain.ErrNotFound)
	}
	c := clone(d)
	return &c, nil
}

// PutIfAbsent checks and inserts under one lock.
func (r *DeviceRepo) PutIfAbsent(_ context.Context, d *domain.Device) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.devices[d.OwnerEmail]
	if !ok {
		owned = make(map[string]domain.Device)
		r.devices[d.OwnerEmail] = owned
	}
	if _, exists := owned[d.DeviceName]; exists {
		return fmt.Errorf("device %s already registered: %w", d.DeviceName, domain.ErrConflict)
	}
	owned[d.DeviceName] = clone(*d)
	return nil
}

func (r *DeviceRepo) Update(_ context.Context, ownerEmail, deviceName string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return fmt.Errorf("no fields to update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[ownerEmail][deviceName]
	if !ok {
		return fmt.Errorf("device not found: %w", domain.ErrNotFound)
	}
	fields := d.Fields()
	for k, v := range updates {
		fields[k] = v
	}
	merged, err := domain.NewDeviceFromFields(fields)
	if err != nil {
		return err
	}
	r.devices[ownerEmail][deviceName] = merged
	return nil
}

func (r *DeviceRepo) Delete(_ context.Context, ownerEmail, deviceName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned, ok := r.devices[ownerEmail]
	if !ok {
		return nil
	}
	delete(owned, deviceName)
	if len(owned) == 0 {
		delete(r.devices, ownerEmail)
	}
	return nil
}

// clone copies the attribute map so callers never share state with the store.
func clone(d domain.Device) domain.Device {
	if d.Attributes != nil {
		attrs := make(map[string]interface{}, len(d.Attributes))
		for k, v := range d.Attributes {
			attrs[k] = v
		}
		d.Attributes = attrs
	}
	return d
}

package domain

import (
	"encoding/json"
	"fmt"
)

// Attribute names of a device record, shared by the JSON body and the table item.
const (
	FieldOwnerEmail   = "owner_email"
	FieldDeviceName   = "device_name"
	FieldDeviceType   = "device_type"
	FieldDeviceAPIKey = "device_api_key"
)

// Device is a registered device. The (OwnerEmail, DeviceName) pair identifies it;
// Attributes carries any extra schemaless fields supplied at create or update time.
type Device struct {
	OwnerEmail   string `validate:"required"`
	DeviceName   string `validate:"required"`
	DeviceType   string
	DeviceAPIKey string
	Attributes   map[string]interface{}
}

// DeviceUpdate maps attribute names to their new values.
type DeviceUpdate map[string]interface{}

// IsIdentityField reports whether name is part of the identity pair.
func IsIdentityField(name string) bool {
	return name == FieldOwnerEmail || name == FieldDeviceName
}

func isKnownField(name string) bool {
	switch name {
	case FieldOwnerEmail, FieldDeviceName, FieldDeviceType, FieldDeviceAPIKey:
		return true
	}
	return false
}

// CheckKnownFieldTypes rejects known fields holding anything but a string or null.
// Extra attributes may hold any value.
func CheckKnownFieldTypes(fields map[string]interface{}) error {
	for k, v := range fields {
		if !isKnownField(k) || v == nil {
			continue
		}
		if _, ok := v.(string); !ok {
			return fmt.Errorf("field %s must be a string: %w", k, ErrBadRequest)
		}
	}
	return nil
}

// NewDeviceFromFields builds a Device from a flat attribute map such as a decoded
// JSON body or a table item. Known fields must be strings when present.
func NewDeviceFromFields(fields map[string]interface{}) (Device, error) {
	if err := CheckKnownFieldTypes(fields); err != nil {
		return Device{}, err
	}
	var d Device
	for k, v := range fields {
		switch k {
		case FieldOwnerEmail, FieldDeviceName, FieldDeviceType, FieldDeviceAPIKey:
			s, _ := v.(string)
			switch k {
			case FieldOwnerEmail:
				d.OwnerEmail = s
			case FieldDeviceName:
				d.DeviceName = s
			case FieldDeviceType:
				d.DeviceType = s
			case FieldDeviceAPIKey:
				d.DeviceAPIKey = s
			}
		default:
			if d.Attributes == nil {
				d.Attributes = make(map[string]interface{})
			}
			d.Attributes[k] = v
		}
	}
	return d, nil
}

// Fields flattens the device into a single attribute map. Empty optional
// fields are omitted.
func (d Device) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Attributes)+4)
	for k, v := range d.Attributes {
		out[k] = v
	}
	out[FieldOwnerEmail] = d.OwnerEmail
	out[FieldDeviceName] = d.DeviceName
	if d.DeviceType != "" {
		out[FieldDeviceType] = d.DeviceType
	}
	if d.DeviceAPIKey != "" {
		out[FieldDeviceAPIKey] = d.DeviceAPIKey
	}
	return out
}

func (d Device) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields())
}

func (d *Device) UnmarshalJSON(b []byte) error {
	var fields map[string]interface{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	parsed, err := NewDeviceFromFields(fields)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

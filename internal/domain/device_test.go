package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeviceFromFields_SplitsKnownAndExtra(t *testing.T) {
	d, err := NewDeviceFromFields(map[string]interface{}{
		"owner_email":    "a@x.com",
		"device_name":    "laptop",
		"device_type":    "cli",
		"device_api_key": "K1",
		"location":       "office",
		"port":           float64(22),
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", d.OwnerEmail)
	assert.Equal(t, "laptop", d.DeviceName)
	assert.Equal(t, "cli", d.DeviceType)
	assert.Equal(t, "K1", d.DeviceAPIKey)
	assert.Equal(t, map[string]interface{}{"location": "office", "port": float64(22)}, d.Attributes)
}

func TestNewDeviceFromFields_NonStringKnownField(t *testing.T) {
	_, err := NewDeviceFromFields(map[string]interface{}{"device_name": 42})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestNewDeviceFromFields_NullKnownFieldIgnored(t *testing.T) {
	d, err := NewDeviceFromFields(map[string]interface{}{"device_type": nil})
	require.NoError(t, err)
	assert.Empty(t, d.DeviceType)
	assert.Nil(t, d.Attributes)
}

func TestDevice_JSONIsFlat(t *testing.T) {
	d := Device{
		OwnerEmail:   "a@x.com",
		DeviceName:   "laptop",
		DeviceAPIKey: "K1",
		Attributes:   map[string]interface{}{"location": "office"},
	}
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &flat))
	assert.Equal(t, map[string]interface{}{
		"owner_email":    "a@x.com",
		"device_name":    "laptop",
		"device_api_key": "K1",
		"location":       "office",
	}, flat)

	var back Device
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, d, back)
}

func TestIsIdentityField(t *testing.T) {
	assert.True(t, IsIdentityField("owner_email"))
	assert.True(t, IsIdentityField("device_name"))
	assert.False(t, IsIdentityField("device_type"))
	assert.False(t, IsIdentityField("device_api_key"))
}

func TestCheckKnownFieldTypes(t *testing.T) {
	assert.NoError(t, CheckKnownFieldTypes(map[string]interface{}{
		"device_api_key": "K1",
		"device_type":    nil,
		"port":           float64(22),
		"enabled":        true,
	}))

	for _, fields := range []map[string]interface{}{
		{"device_api_key": float64(5)},
		{"device_type": true},
		{"owner_email": []interface{}{"a@x.com"}},
	} {
		err := CheckKnownFieldTypes(fields)
		assert.True(t, errors.Is(err, ErrBadRequest), "%v", fields)
	}
}

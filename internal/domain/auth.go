package domain

// AuthOutcome is the decision reached for an authentication attempt.
type AuthOutcome string

const (
	AuthAuthenticated  AuthOutcome = "AUTHENTICATED"
	AuthUnauthorized   AuthOutcome = "UNAUTHORIZED"
	AuthUserNotFound   AuthOutcome = "USER_NOT_FOUND"
	AuthDeviceNotFound AuthOutcome = "DEVICE_NOT_FOUND"
	AuthStoreError     AuthOutcome = "STORE_ERROR"
)

// AuthRequest carries the credentials presented by a device.
// A non-empty DeviceType switches matching to strict mode.
type AuthRequest struct {
	Email      string `validate:"required"`
	DeviceName string `validate:"required"`
	DeviceType string
	APIKey     string `validate:"required"`
}

// Strict reports whether the device type takes part in matching.
func (r AuthRequest) Strict() bool { return r.DeviceType != "" }

// AuthResult is the outcome of Authenticate. Detail holds the store error
// message for AuthStoreError and is empty otherwise.
type AuthResult struct {
	Outcome AuthOutcome
	Detail  string
}

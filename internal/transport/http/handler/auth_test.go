package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/device-registry/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Authenticate(ctx context.Context, req domain.AuthRequest) (domain.AuthResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func TestAuthenticate_ResponseMapping(t *testing.T) {
	storeErr := errors.New("table unavailable")
	tests := []struct {
		name   string
		result domain.AuthResult
		err    error
		code   int
		msg    string
	}{
		{"authenticated", domain.AuthResult{Outcome: domain.AuthAuthenticated}, nil, http.StatusOK, MsgAuthenticated},
		{"wrong key", domain.AuthResult{Outcome: domain.AuthUnauthorized}, nil, http.StatusUnauthorized, "Authentication failed: Invalid API Key"},
		{"no user", domain.AuthResult{Outcome: domain.AuthUserNotFound}, nil, http.StatusNotFound, "User a@x.com not found"},
		{"no device", domain.AuthResult{Outcome: domain.AuthDeviceNotFound}, nil, http.StatusNotFound, "Device laptop not found for this user"},
		{"store", domain.AuthResult{Outcome: domain.AuthStoreError, Detail: storeErr.Error()}, storeErr, http.StatusInternalServerError, "Database Error: table unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAuthSvc{}
			svc.On("Authenticate", mock.Anything, domain.AuthRequest{
				Email: "a@x.com", DeviceName: "laptop", DeviceType: "cli", APIKey: "K1",
			}).Return(tt.result, tt.err)

			rr := httptest.NewRecorder()
			target := "/api/cli_auth?email=a@x.com&device_name=laptop&device_type=cli&api_key=K1"
			NewAuthHandler(svc).Authenticate(rr, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, tt.msg, decodeResult(t, rr).Result)
		})
	}
}

func TestAuthenticate_LegacyDeviceParamIsLooseMode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Authenticate", mock.Anything, domain.AuthRequest{
		Email: "a@x.com", DeviceName: "laptop", APIKey: "K1",
	}).Return(domain.AuthResult{Outcome: domain.AuthAuthenticated}, nil)

	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Authenticate(rr, httptest.NewRequest(http.MethodGet, "/v1/auth?email=a@x.com&device=laptop&api_key=K1", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestAuthenticate_MissingParams(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Authenticate", mock.Anything, mock.Anything).
		Return(domain.AuthResult{}, fmt.Errorf("invalid input: APIKey is required: %w", domain.ErrBadRequest))

	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Authenticate(rr, httptest.NewRequest(http.MethodGet, "/v1/auth?email=a@x.com", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeResult(t, rr).Result, "Missing parameters")
}

func TestAuthenticate_StoreOutcomeWinsOverWrappedError(t *testing.T) {
	// A store error may wrap any sentinel; the outcome still decides the status.
	storeErr := fmt.Errorf("query devices: %w", domain.ErrBadRequest)
	svc := &mockAuthSvc{}
	svc.On("Authenticate", mock.Anything, mock.Anything).
		Return(domain.AuthResult{Outcome: domain.AuthStoreError, Detail: storeErr.Error()}, storeErr)

	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Authenticate(rr, httptest.NewRequest(http.MethodGet, "/v1/auth?email=a@x.com&device_name=laptop&api_key=K1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Database Error: "+storeErr.Error(), decodeResult(t, rr).Result)
}

func TestAuthenticate_NoOutcomeStoreError(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Authenticate", mock.Anything, mock.Anything).Return(domain.AuthResult{}, errors.New("timeout"))

	rr := httptest.NewRecorder()
	NewAuthHandler(svc).Authenticate(rr, httptest.NewRequest(http.MethodGet, "/v1/auth?email=a@x.com&device_name=laptop&api_key=K1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Database Error: timeout", decodeResult(t, rr).Result)
}

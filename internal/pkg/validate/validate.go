// Package validate checks the `validate` tags on Device and AuthRequest.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/device-registry/internal/domain"
	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct reports every failed tag on s in one message, wrapped in
// domain.ErrBadRequest so handlers answer 400 without reaching the store.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	failed := make([]string, 0, len(ve))
	for _, fe := range ve {
		failed = append(failed, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid input: %s: %w", strings.Join(failed, ", "), domain.ErrBadRequest)
}

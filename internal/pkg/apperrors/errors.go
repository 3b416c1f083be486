// FILE: internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError signals bad or missing caller input. Mapped to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProviderError signals an upstream API failure (embedding, completion).
// UpstreamStatus carries the provider HTTP status when available (0 otherwise).
type ProviderError struct {
	Provider       string
	UpstreamStatus int
	Message        string
	Err            error
}

func (e *ProviderError) Error() string {
	if e.UpstreamStatus > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.UpstreamStatus, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProvider(provider string, status int, message string, err error) *ProviderError {
	return &ProviderError{Provider: provider, UpstreamStatus: status, Message: message, Err: err}
}

// TimeoutError signals that the request deadline elapsed before the pipeline
// finished. Mapped to HTTP 504.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return e.Message
}

func NewTimeout(message string) *TimeoutError {
	return &TimeoutError{Message: message}
}

// ConfigurationError signals missing credentials or endpoints. Fails fast at
// startup or on first use.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfiguration(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError covers missing resources in CRUD flows. Mapped to HTTP 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// Classification helpers for controllers.

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsTimeout(err error) bool {
	var target *TimeoutError
	return errors.As(err, &target)
}

func IsProvider(err error) bool {
	var target *ProviderError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrorCategory represents the category of error for handling
type ErrorCategory string

const (
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryNetworkError  ErrorCategory = "network_error"
	CategoryGatewayFault  ErrorCategory = "gateway_fault"
	CategoryDecoding      ErrorCategory = "decoding"
)

// ConfigurationError is returned when a client is constructed with missing or
// invalid settings
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error on field '%s': %s", e.Field, e.Message)
}

// Category returns CategoryConfiguration
func (e *ConfigurationError) Category() ErrorCategory { return CategoryConfiguration }

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
	}
}

// TransportError represents a failed HTTP exchange with the gateway.
// Code is the HTTP status for non-2xx replies and 0 when no reply was received.
type TransportError struct {
	Code    int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Category returns CategoryNetworkError
func (e *TransportError) Category() ErrorCategory { return CategoryNetworkError }

// NewTransportError creates a transport error for a non-2xx status
func NewTransportError(code int, message string) *TransportError {
	return &TransportError{
		Code:    code,
		Message: message,
	}
}

// WrapTransportError creates a transport error for a request that never got a reply
func WrapTransportError(err error) *TransportError {
	return &TransportError{
		Message: err.Error(),
		Err:     err,
	}
}

// APIFault is a structured <Error> payload returned by the gateway
type APIFault struct {
	Code    string
	Message string
	Detail  string
}

func (e *APIFault) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Code, e.Message, e.Detail)
}

// Category returns CategoryGatewayFault
func (e *APIFault) Category() ErrorCategory { return CategoryGatewayFault }

// NewAPIFault creates a new gateway fault
func NewAPIFault(code, message, detail string) *APIFault {
	return &APIFault{
		Code:    code,
		Message: message,
		Detail:  detail,
	}
}

// DecodingError is returned when the gateway reply is neither a Response nor an
// Error document
type DecodingError struct {
	Message string
	Body    string
	Err     error
}

func (e *DecodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("decoding error: %s", e.Message)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// Category returns CategoryDecoding
func (e *DecodingError) Category() ErrorCategory { return CategoryDecoding }

// NewDecodingError creates a decoding error. Body is truncated for logging.
func NewDecodingError(message string, body []byte, err error) *DecodingError {
	return &DecodingError{
		Message: message,
		Body:    truncate(strings.TrimSpace(string(body)), 512),
		Err:     err,
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

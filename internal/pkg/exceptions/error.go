package exceptions

import (
	"errors"
	"fmt"
	"medirdv-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.cause.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError wraps err with the HTTP status and messages of a known
// failure. When err is already a CustomError its locations are carried over so
// the chain of call sites survives re-wrapping.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	customErr := &CustomError{
		StatusCode:    statusCode,
		Success:       false,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		cause:         err,
	}

	var previous *CustomError
	if errors.As(err, &previous) {
		customErr.Locations = append(customErr.Locations, previous.Locations...)
	}
	customErr.Locations = append(customErr.Locations, getLocation(3))
	return customErr
}

func WrapWithoutError(statusCode int, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{getLocation(2)},
	}
}

// ToCustomError returns err as a CustomError, wrapping unknown errors as internal failures.
func ToCustomError(err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}
	return &CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		DevMessage:    constvars.ErrDevServerProcess,
		cause:         err,
		Locations:     []Location{getLocation(2)},
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

package errors

import (
	"context"
	"errors"
)

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return err != nil && errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsUnauthorized checks if an error indicates a missing wallet session.
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var unauthorizedErr *UnauthorizedError
	return errors.As(err, &unauthorizedErr) || errors.Is(err, ErrNotConnected)
}

// IsForbidden checks if an error indicates lack of authorization.
func IsForbidden(err error) bool {
	return err != nil && errors.Is(err, ErrForbidden)
}

// IsConflict checks if an error indicates an action already in flight.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsTimeout checks if an error indicates a timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr) || errors.Is(err, context.DeadlineExceeded)
}

// IsConnectivity checks if an error is a wallet or chain connectivity problem.
func IsConnectivity(err error) bool {
	if err == nil {
		return false
	}
	var connectivityErr *ConnectivityError
	return errors.As(err, &connectivityErr)
}

// IsOnChainRejection checks if a transaction was refused or reverted.
func IsOnChainRejection(err error) bool {
	if err == nil {
		return false
	}
	var txErr *TransactionError
	return errors.As(err, &txErr)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCancelled
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidInput):
		return CodeValidation
	case errors.Is(err, ErrNoProvider):
		return CodeNoProvider
	case errors.Is(err, ErrUserRejected):
		return CodeUserRejected
	case errors.Is(err, ErrNotConnected):
		return CodeNotConnected
	default:
		return CodeInternal
	}
}

// GetErrorMessage extracts a human-readable message from an error.
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Common sentinel errors for quick checks
var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the active account lacks permission for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when input is invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoProvider is returned when no wallet provider is installed or configured.
	ErrNoProvider = errors.New("no wallet provider")

	// ErrUserRejected is returned when the wallet holder declines a connection request.
	ErrUserRejected = errors.New("connection request rejected")

	// ErrNotConnected is returned when an operation needs a signer and no account is connected.
	ErrNotConnected = errors.New("wallet not connected")
)

// Error is the base interface for all custom errors in the system.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Stack returns the captured stack trace.
func (e *BaseError) Stack() []uintptr {
	return e.stack
}

func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// StackTrace returns a formatted stack trace string.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}

func newBase(code, message string, cause error) *BaseError {
	return &BaseError{code: code, message: message, cause: cause, stack: captureStack(2)}
}

// ValidationError represents input rejected before submission.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: newBase(CodeValidation, message, nil),
		Field:     field,
		Value:     value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

// Is lets errors.Is(err, ErrInvalidInput) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NotFoundError represents a resource not found error.
type NotFoundError struct {
	*BaseError
	Resource string
	ID       string
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{
		BaseError: newBase(CodeNotFound, fmt.Sprintf("%s not found", resource), nil),
		Resource:  resource,
		ID:        id,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with ID '%s' not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is lets errors.Is(err, ErrNotFound) match any not found error.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnauthorizedError represents a missing wallet session.
type UnauthorizedError struct {
	*BaseError
}

// NewUnauthorizedError creates a new unauthorized error.
func NewUnauthorizedError(message string) *UnauthorizedError {
	if message == "" {
		message = "wallet connection required"
	}
	return &UnauthorizedError{BaseError: newBase(CodeUnauthorized, message, nil)}
}

// ForbiddenError represents an authorization failure of the active account.
type ForbiddenError struct {
	*BaseError
	Resource string
	Action   string
}

// NewForbiddenError creates a new forbidden error.
func NewForbiddenError(resource, action string) *ForbiddenError {
	message := "forbidden"
	if resource != "" && action != "" {
		message = fmt.Sprintf("forbidden: cannot %s %s", action, resource)
	}
	return &ForbiddenError{
		BaseError: newBase(CodeForbidden, message, nil),
		Resource:  resource,
		Action:    action,
	}
}

// NewAuthorizationError creates a forbidden error with a descriptive message.
func NewAuthorizationError(resource, action, message string) *ForbiddenError {
	return &ForbiddenError{
		BaseError: newBase(CodeForbidden, message, nil),
		Resource:  resource,
		Action:    action,
	}
}

// Is lets errors.Is(err, ErrForbidden) match any forbidden error.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// ConflictError represents an action that is already in flight.
type ConflictError struct {
	*BaseError
	Resource string
	Field    string
	Value    string
}

// NewConflictError creates a new conflict error.
func NewConflictError(resource, field, value string) *ConflictError {
	message := fmt.Sprintf("%s already in progress", resource)
	if field != "" {
		message = fmt.Sprintf("%s with %s='%s' already in progress", resource, field, value)
	}
	return &ConflictError{
		BaseError: newBase(CodeConflict, message, nil),
		Resource:  resource,
		Field:     field,
		Value:     value,
	}
}

// InternalError represents an internal error.
type InternalError struct {
	*BaseError
	Operation string
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *InternalError {
	if message == "" {
		message = "internal error"
	}
	return &InternalError{BaseError: newBase(CodeInternal, message, cause)}
}

// WithOperation sets the operation context.
func (e *InternalError) WithOperation(op string) *InternalError {
	e.Operation = op
	return e
}

// TimeoutError represents a caller deadline that passed while waiting on the chain.
// TxHash is set when a transaction had already been submitted; it stays pending on chain.
type TimeoutError struct {
	*BaseError
	Operation string
	Duration  string
	TxHash    string
}

// NewTimeoutError creates a new timeout error.
func NewTimeoutError(operation, duration string) *TimeoutError {
	message := "operation timeout"
	if operation != "" {
		message = fmt.Sprintf("%s timeout", operation)
	}
	return &TimeoutError{
		BaseError: newBase(CodeTimeout, message, nil),
		Operation: operation,
		Duration:  duration,
	}
}

// WithTx records the hash of the already submitted transaction.
func (e *TimeoutError) WithTx(hash string) *TimeoutError {
	e.TxHash = hash
	return e
}

// ConnectivityError represents a wallet or chain connectivity problem.
type ConnectivityError struct {
	*BaseError
	Expected string
	Actual   string
}

// NewNoProviderError reports that no wallet provider is available.
func NewNoProviderError(detail string) *ConnectivityError {
	msg := "no wallet provider available"
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}
	return &ConnectivityError{BaseError: newBase(CodeNoProvider, msg, ErrNoProvider)}
}

// NewUserRejectedError reports that the wallet holder declined the connection request.
func NewUserRejectedError(cause error) *ConnectivityError {
	if cause == nil {
		cause = ErrUserRejected
	}
	return &ConnectivityError{BaseError: newBase(CodeUserRejected, "connection request rejected", cause)}
}

// NewNotConnectedError reports that no account is connected.
func NewNotConnectedError() *ConnectivityError {
	return &ConnectivityError{BaseError: newBase(CodeNotConnected, "wallet not connected", ErrNotConnected)}
}

// NewChainMismatchError reports that the wallet is on the wrong chain.
func NewChainMismatchError(expected, actual string) *ConnectivityError {
	return &ConnectivityError{
		BaseError: newBase(CodeChainMismatch,
			fmt.Sprintf("wallet is on chain %s, expected chain %s", actual, expected), nil),
		Expected: expected,
		Actual:   actual,
	}
}

// NewNetworkError wraps a failure talking to the chain node.
func NewNetworkError(message string, cause error) *ConnectivityError {
	if message == "" {
		message = "chain request failed"
	}
	return &ConnectivityError{BaseError: newBase(CodeNetworkError, message, cause)}
}

// TransactionError represents an on-chain rejection: refused at submission or reverted when mined.
type TransactionError struct {
	*BaseError
	Method string
	TxHash string
}

// NewTxRejectedError reports a transaction the node refused to accept.
func NewTxRejectedError(method string, cause error) *TransactionError {
	return &TransactionError{
		BaseError: newBase(CodeTxRejected, fmt.Sprintf("%s transaction rejected", method), cause),
		Method:    method,
	}
}

// NewTxRevertedError reports a mined transaction whose receipt status is failure.
func NewTxRevertedError(method, txHash string) *TransactionError {
	return &TransactionError{
		BaseError: newBase(CodeTxReverted, fmt.Sprintf("%s transaction %s reverted", method, txHash), nil),
		Method:    method,
		TxHash:    txHash,
	}
}

// DecodeError represents a contract response that could not be shaped into domain records.
type DecodeError struct {
	*BaseError
	Method string
}

// NewDecodeError creates a new decode error.
func NewDecodeError(method, message string) *DecodeError {
	return &DecodeError{
		BaseError: newBase(CodeDecodeError, fmt.Sprintf("%s: %s", method, message), nil),
		Method:    method,
	}
}

// Wrap wraps an error with additional context.
// If the error is already one of our custom types, it preserves the code
// and adds the cause chain. Otherwise, it creates an InternalError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var e Error
	if errors.As(err, &e) {
		return &BaseError{
			code:    e.Code(),
			message: message,
			cause:   err,
			stack:   captureStack(1),
		}
	}

	return &InternalError{
		BaseError: &BaseError{
			code:    CodeInternal,
			message: message,
			cause:   err,
			stack:   captureStack(1),
		},
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// New creates a new error with a message.
func New(message string) error {
	return &BaseError{
		code:    CodeInternal,
		message: message,
		stack:   captureStack(1),
	}
}

// Newf creates a new error with a formatted message.
func Newf(format string, args ...interface{}) error {
	return New(fmt.Sprintf(format, args...))
}

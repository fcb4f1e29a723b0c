package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	Status      int               `json:"-"`
	Code        string            `json:"code"`
	Message     string            `json:"message"`
	Category    ErrorCategory     `json:"category"`
	Recoverable bool              `json:"recoverable"`
	Details     map[string]string `json:"details,omitempty"`
	TraceID     string            `json:"trace_id,omitempty"`
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for an error.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return codeToHTTPStatus(GetErrorCode(err))
}

// codeToHTTPStatus maps error codes to HTTP status codes.
func codeToHTTPStatus(code string) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeCancelled:
		return 499 // Client Closed Request
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized, CodeNotConnected:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeChainMismatch, CodeUserRejected:
		return http.StatusPreconditionFailed
	case CodeTxRejected, CodeTxReverted:
		return http.StatusUnprocessableEntity
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeNoProvider, CodeNetworkError:
		return http.StatusServiceUnavailable
	case CodeDecodeError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ToHTTPError converts an error to an HTTPError.
func ToHTTPError(err error, traceID string) *HTTPError {
	if err == nil {
		return &HTTPError{
			Status:  http.StatusOK,
			Code:    CodeOK,
			Message: "success",
			TraceID: traceID,
		}
	}

	code := GetErrorCode(err)
	httpErr := &HTTPError{
		Status:      codeToHTTPStatus(code),
		Code:        code,
		Message:     GetErrorMessage(err),
		Category:    GetCategory(code),
		Recoverable: IsRecoverable(code),
		TraceID:     traceID,
		Details:     make(map[string]string),
	}

	var (
		validationErr   *ValidationError
		notFoundErr     *NotFoundError
		forbiddenErr    *ForbiddenError
		conflictErr     *ConflictError
		timeoutErr      *TimeoutError
		connectivityErr *ConnectivityError
		txErr           *TransactionError
		internalErr     *InternalError
	)

	switch {
	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			httpErr.Details["field"] = validationErr.Field
		}
	case errors.As(err, &notFoundErr):
		if notFoundErr.Resource != "" {
			httpErr.Details["resource"] = notFoundErr.Resource
		}
		if notFoundErr.ID != "" {
			httpErr.Details["id"] = notFoundErr.ID
		}
	case errors.As(err, &forbiddenErr):
		if forbiddenErr.Resource != "" {
			httpErr.Details["resource"] = forbiddenErr.Resource
		}
		if forbiddenErr.Action != "" {
			httpErr.Details["action"] = forbiddenErr.Action
		}
	case errors.As(err, &conflictErr):
		if conflictErr.Resource != "" {
			httpErr.Details["resource"] = conflictErr.Resource
		}
		if conflictErr.Value != "" {
			httpErr.Details["action"] = conflictErr.Value
		}
	case errors.As(err, &timeoutErr):
		if timeoutErr.Operation != "" {
			httpErr.Details["operation"] = timeoutErr.Operation
		}
		if timeoutErr.Duration != "" {
			httpErr.Details["duration"] = timeoutErr.Duration
		}
		if timeoutErr.TxHash != "" {
			httpErr.Details["tx_hash"] = timeoutErr.TxHash
		}
	case errors.As(err, &connectivityErr):
		if connectivityErr.Expected != "" {
			httpErr.Details["expected_chain_id"] = connectivityErr.Expected
			httpErr.Details["actual_chain_id"] = connectivityErr.Actual
		}
	case errors.As(err, &txErr):
		if txErr.Method != "" {
			httpErr.Details["method"] = txErr.Method
		}
		if txErr.TxHash != "" {
			httpErr.Details["tx_hash"] = txErr.TxHash
		}
	case errors.As(err, &internalErr):
		if internalErr.Operation != "" {
			httpErr.Details["operation"] = internalErr.Operation
		}
	}

	return httpErr
}

// WriteHTTPError writes an error response to an http.ResponseWriter.
func WriteHTTPError(w http.ResponseWriter, err error, traceID string) {
	httpErr := ToHTTPError(err, traceID)
	w.Header().Set("Content-Type", "application/json")

	if httpErr.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Wallet realm="tracker"`)
	}

	w.WriteHeader(httpErr.Status)
	_ = json.NewEncoder(w).Encode(httpErr)
}

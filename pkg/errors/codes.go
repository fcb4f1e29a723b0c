package errors

// Error codes for categorizing errors.
// These codes map to HTTP status codes in http.go.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeCancelled indicates the caller abandoned the operation.
	CodeCancelled = "CANCELLED"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// CodeValidation indicates input validation failed before anything was submitted.
	CodeValidation = "VALIDATION_ERROR"

	// CodeNotFound indicates a resource was not found.
	CodeNotFound = "NOT_FOUND"

	// CodeUnauthorized indicates no wallet session is established.
	CodeUnauthorized = "UNAUTHORIZED"

	// CodeForbidden indicates the active account lacks permission for an action.
	CodeForbidden = "FORBIDDEN"

	// CodeConflict indicates the same logical action is already in flight.
	CodeConflict = "CONFLICT"

	// CodeTimeout indicates the caller's deadline passed while waiting on the chain.
	CodeTimeout = "TIMEOUT"

	// CodeConfigError indicates a configuration error.
	CodeConfigError = "CONFIG_ERROR"

	// CodeDecodeError indicates a contract response could not be shaped into records.
	CodeDecodeError = "DECODE_ERROR"

	// Connectivity codes

	// CodeNoProvider indicates no wallet provider is available.
	CodeNoProvider = "NO_PROVIDER"

	// CodeUserRejected indicates the wallet holder declined the connection request.
	CodeUserRejected = "USER_REJECTED"

	// CodeNotConnected indicates no account is connected, so no signer exists.
	CodeNotConnected = "NOT_CONNECTED"

	// CodeChainMismatch indicates the wallet is on a different chain than configured.
	CodeChainMismatch = "CHAIN_MISMATCH"

	// CodeNetworkError indicates the chain node could not be reached or answered with an error.
	CodeNetworkError = "NETWORK_ERROR"

	// On-chain rejection codes

	// CodeTxRejected indicates the node refused the transaction at submission.
	CodeTxRejected = "TX_REJECTED"

	// CodeTxReverted indicates the transaction was mined but reverted.
	CodeTxReverted = "TX_REVERTED"
)

// ErrorCategory groups codes into the dashboard error taxonomy.
type ErrorCategory string

const (
	CategoryConnectivity  ErrorCategory = "CONNECTIVITY"
	CategoryAuthorization ErrorCategory = "AUTHORIZATION"
	CategoryValidation    ErrorCategory = "VALIDATION"
	CategoryOnChain       ErrorCategory = "ON_CHAIN"
	CategoryNotFound      ErrorCategory = "NOT_FOUND"
	CategoryInternal      ErrorCategory = "INTERNAL"
)

// GetCategory returns the category for an error code.
func GetCategory(code string) ErrorCategory {
	switch code {
	case CodeNoProvider, CodeUserRejected, CodeNotConnected,
		CodeChainMismatch, CodeNetworkError, CodeTimeout:
		return CategoryConnectivity
	case CodeUnauthorized, CodeForbidden:
		return CategoryAuthorization
	case CodeValidation:
		return CategoryValidation
	case CodeTxRejected, CodeTxReverted:
		return CategoryOnChain
	case CodeNotFound:
		return CategoryNotFound
	default:
		return CategoryInternal
	}
}

// IsRecoverable reports whether the user can fix the condition and try again from the UI
// (reconnect, switch network, correct input). Nothing is retried automatically.
func IsRecoverable(code string) bool {
	switch code {
	case CodeUserRejected, CodeNotConnected, CodeChainMismatch,
		CodeValidation, CodeConflict, CodeNotFound:
		return true
	default:
		return false
	}
}

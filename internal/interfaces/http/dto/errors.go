package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ERR_ACCOUNT_LOCKED"
	ErrCodeAccountInactive    = "ERR_ACCOUNT_INACTIVE"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountLocked:      http.StatusForbidden,
	ErrCodeAccountInactive:    http.StatusForbidden,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to the wire format.
// Domain codes missing from this table pass through NormalizeErrorCode
// unchanged and read as 500s, which makes an unmapped code visible in
// tests rather than silently succeeding.
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ROLE_NOT_FOUND":        ErrCodeNotFound,
	"LINE_ITEM_NOT_FOUND":   ErrCodeNotFound,
	"PERMISSION_NOT_FOUND":  ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"DUPLICATE_EMAIL":       ErrCodeAlreadyExists,
	"DUPLICATE_NAME":        ErrCodeAlreadyExists,
	"DUPLICATE_LINE_ITEM":   ErrCodeAlreadyExists,
	"PERMISSION_EXISTS":     ErrCodeAlreadyExists,
	"ROLE_ALREADY_ASSIGNED": ErrCodeAlreadyExists,

	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
	"ACCOUNT_LOCKED":      ErrCodeAccountLocked,
	"ACCOUNT_INACTIVE":    ErrCodeAccountInactive,
	"FORBIDDEN":           ErrCodeForbidden,

	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"OPTIMISTIC_LOCK_ERROR": ErrCodeConcurrencyConflict,

	"INVALID_STATE":      ErrCodeInvalidState,
	"INVALID_TRANSITION": ErrCodeInvalidState,
	"NOT_DRAFT":          ErrCodeInvalidState,
	"NOT_EDITABLE":       ErrCodeInvalidState,
	"EMPTY_PROPOSAL":     ErrCodeInvalidState,
	"ALREADY_ACTIVE":     ErrCodeInvalidState,
	"ALREADY_INACTIVE":   ErrCodeInvalidState,
	"ALREADY_DEACTIVATED": ErrCodeInvalidState,

	"CUSTOMER_IN_USE":   ErrCodeBusinessRule,
	"CUSTOMER_INACTIVE": ErrCodeBusinessRule,
	"PRODUCT_INACTIVE":  ErrCodeBusinessRule,
	"SYSTEM_ROLE":       ErrCodeBusinessRule,
	"ROLE_NOT_ASSIGNED": ErrCodeBusinessRule,
	"VERSION_MISMATCH":  ErrCodeBusinessRule,

	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_EMAIL":        ErrCodeInvalidInput,
	"INVALID_NAME":         ErrCodeInvalidInput,
	"INVALID_TITLE":        ErrCodeInvalidInput,
	"INVALID_SKU":          ErrCodeInvalidInput,
	"INVALID_PRICE":        ErrCodeInvalidInput,
	"INVALID_CURRENCY":     ErrCodeInvalidInput,
	"INVALID_QUANTITY":     ErrCodeInvalidInput,
	"INVALID_TIER":         ErrCodeInvalidInput,
	"INVALID_STATUS":       ErrCodeInvalidInput,
	"INVALID_PHONE":        ErrCodeInvalidInput,
	"INVALID_WEBSITE":      ErrCodeInvalidInput,
	"INVALID_ADDRESS":      ErrCodeInvalidInput,
	"INVALID_INDUSTRY":     ErrCodeInvalidInput,
	"INVALID_CONTACT_NAME": ErrCodeInvalidInput,
	"INVALID_CATEGORY":     ErrCodeInvalidInput,
	"INVALID_CUSTOMER":     ErrCodeInvalidInput,
	"INVALID_PRODUCT":      ErrCodeInvalidInput,
	"INVALID_DUE_DATE":     ErrCodeInvalidInput,
	"INVALID_WIZARD_STEP":  ErrCodeInvalidInput,
	"INVALID_DISPLAY_NAME": ErrCodeInvalidInput,
	"INVALID_PASSWORD":     ErrCodeInvalidInput,
	"INVALID_PERMISSION":   ErrCodeInvalidInput,
	"INVALID_EVENT":        ErrCodeInvalidInput,
	"INVALID_PRIORITY":     ErrCodeInvalidInput,
	"INVALID_PROPERTIES":   ErrCodeInvalidInput,

	"BAD_REQUEST":    ErrCodeBadRequest,
	"INTERNAL_ERROR": ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Codes already in the ERR_* form, or unknown ones, pass through as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := domainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}

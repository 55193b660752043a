package errors

import "net/http"

// Error code constants.
// Clients switch on Code; Message is English text for operators.

// Campaign error codes.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeCampaignEnded      = "CAMPAIGN_ENDED"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeTransferFailed     = "TRANSFER_FAILED"
	CodeNotInitialized     = "NOT_INITIALIZED"
	CodeAlreadyInitialized = "ALREADY_INITIALIZED"
	CodeAmountOverflow     = "AMOUNT_OVERFLOW"
	CodeCorruptState       = "CORRUPT_STATE"
)

// Host error codes.
const (
	CodeInvocationFailed = "INVOCATION_FAILED"
	CodeStorageUnavail   = "STORAGE_UNAVAILABLE"
	CodeJournalBroken    = "JOURNAL_CHAIN_BROKEN"
)

// Auth error codes.
const (
	CodeAuthFailed   = "AUTH_FAILED"
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeForbidden    = "FORBIDDEN"
)

// Validation error codes.
const (
	CodeInvalidAddress  = "INVALID_ADDRESS"
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidationError = "VALIDATION_FAILED"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_ERROR"
)

// HTTP contract error codes.
const (
	CodeRequestContract  = "OPENAPI_REQUEST_INVALID"
	CodeResponseContract = "OPENAPI_RESPONSE_INVALID"
)

// Convenience constructors using predefined codes.

// ErrInvalidAddressf creates a bad request error for a malformed address field.
func ErrInvalidAddressf(field string) *AppError {
	return &AppError{
		Code:       CodeInvalidAddress,
		Message:    "field is not a valid address: " + field,
		HTTPStatus: http.StatusBadRequest,
		Params:     map[string]interface{}{"field": field},
	}
}

// ErrCampaignEndedf creates the error returned for late donations.
func ErrCampaignEndedf(deadline, now uint64) *AppError {
	return &AppError{
		Code:       CodeCampaignEnded,
		Message:    "campaign has ended",
		HTTPStatus: http.StatusConflict,
		Params:     map[string]interface{}{"deadline": deadline, "ledger_time": now},
	}
}

// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them, not on
// the message text. Each code is produced by exactly one row of Classify.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "missing_parameters",
//	  "message": "missing parameter"
//	}
package handlers

const (
	ErrCodeBadRequest        = "bad_request"
	ErrCodeMissingParameters = "missing_parameters"
	ErrCodeUnauthorized      = "unauthorized"
	ErrCodeWrongCredential   = "wrong_credential"
	ErrCodeInvalidCredential = "invalid_credential"
	ErrCodeAccountExists     = "account_exists"
	ErrCodePersistence       = "persistence_failure"
	ErrCodeExternalService   = "external_service_failure"
	ErrCodeUnprocessable     = "unprocessable_entity"
	ErrCodeForbidden         = "forbidden"
	ErrCodeNotFound          = "not_found"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
	ErrCodeTooManyRequests   = "too_many_requests"
	ErrCodeInternal          = "internal_error"
)

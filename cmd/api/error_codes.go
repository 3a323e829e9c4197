package main

// Codes for router-level failures outside the apperr variants.
const (
	errCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Client-facing messages
const (
	msgInvalidCredentials  = "Invalid credentials"
	msgInvalidToken        = "invalid or expired authentication token"
	msgExpiredToken        = "authentication token has expired"
	msgAuthRequired        = "you must be authenticated to access this resource"
	msgNotPermitted        = "your user account doesn't have the necessary permissions to access this resource"
	msgEditConflict        = "unable to update the record due to an edit conflict, please try again"
	msgMethodNotSupportedF = "the %s method is not supported for this resource"
)

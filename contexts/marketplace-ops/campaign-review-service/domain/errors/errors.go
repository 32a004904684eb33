package errors

import "errors"

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidTransition   = errors.New("invalid campaign status transition")
	ErrEditNotFound        = errors.New("edit request not found")
	ErrEditAlreadyResolved = errors.New("edit request already resolved")
	ErrUnauthorized        = errors.New("caller is not permitted to perform this action")

	// Read-path store failures the resilience layer may absorb.
	ErrStoreUnavailable       = errors.New("campaign store unavailable")
	ErrStoreSchemaUnavailable = errors.New("campaign store schema unavailable")

	// Write-path failures are terminal for the operation and never retried.
	ErrStoreWriteFailure = errors.New("campaign store write failed")
)

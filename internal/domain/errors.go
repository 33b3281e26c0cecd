package domain

import "errors"

var (
	// ErrMissingSignature is returned when a webhook arrives without a signature header
	ErrMissingSignature = errors.New("missing signature")

	// ErrInvalidSignature is returned when a webhook signature does not match the body
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrWebhookSecretNotConfigured is returned when no webhook secret is configured
	ErrWebhookSecretNotConfigured = errors.New("webhook secret not configured")

	// ErrMalformedPayload is returned when a webhook body cannot be decoded
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrUnauthorized is returned when the scheduled trigger secret does not match
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEquityCapExceeded is returned when a grant would push the platform above its equity cap
	ErrEquityCapExceeded = errors.New("equity cap exceeded")

	// ErrProjectNotFound is returned when a tranche references an unknown project
	ErrProjectNotFound = errors.New("project not found")

	// ErrTrancheNotFound is returned when a tranche does not exist
	ErrTrancheNotFound = errors.New("tranche not found")

	// ErrPayoutTimeout is returned when the settlement service does not answer in time
	ErrPayoutTimeout = errors.New("payout timed out")

	// ErrPayoutRejected is returned when the settlement service refuses a batch
	ErrPayoutRejected = errors.New("payout rejected")
)

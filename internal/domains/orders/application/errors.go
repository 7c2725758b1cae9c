package application

import "errors"

var (
	// ErrInvalidWebhook signals the webhook payload could not be acted on.
	ErrInvalidWebhook = errors.New("invalid webhook payload")
)

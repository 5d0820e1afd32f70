package services

import "errors"

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	// ErrInvalidCredentials covers unknown email, wrong password and inactive
	// accounts alike so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	ErrSKUTaken          = errors.New("sku already in use")
	ErrVariantExists     = errors.New("variant with this size and color already exists for the product")
	ErrInsufficientStock = errors.New("insufficient stock for requested adjustment")

	ErrUserNotFound      = errors.New("user not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInventoryNotFound = errors.New("inventory not found")
)

// ValidationError reports a single offending field. Multi-field updates are
// validated in full before anything is written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

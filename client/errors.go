package client

import "errors"

var (
	// ErrQuantityTooLow rejects a quantity below one before any request is
	// sent; removal is a separate operation.
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	// ErrUnknownLine means the line id is not in the current cart view.
	ErrUnknownLine = errors.New("unknown cart line")
	// ErrLinePending blocks a second mutation while one is outstanding on
	// the same line.
	ErrLinePending = errors.New("a change for this line is already in flight")
	// ErrEmptyCode rejects a blank promotion code locally.
	ErrEmptyCode = errors.New("promotion code is empty")
	// ErrPromotionRejected wraps the server's rejection reason.
	ErrPromotionRejected = errors.New("promotion rejected")
	// ErrCheckoutInFlight makes a second submit a no-op while one is
	// outstanding.
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

// APIError is a non-success response from the storefront. Message holds
// the server-provided text when there is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "something went wrong, please try again"
}

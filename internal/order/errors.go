package order

import "errors"

var (
	// ErrDuplicateSubmission means the backend already has an order for
	// this idempotency token. The earlier submission won; this is not a
	// new order.
	ErrDuplicateSubmission = errors.New("order already submitted for this idempotency token")

	// ErrSubmissionFailed is returned after the automatic retry is
	// exhausted. The cart is left intact so the user can retry.
	ErrSubmissionFailed = errors.New("order submission failed")
)

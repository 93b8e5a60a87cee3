package errors

import "fmt"

// ErrNotFound indicates a referenced resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates malformed or rejected input
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

// ErrUnauthorized indicates a missing or invalid credential, including a failed webhook signature
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrForbidden indicates an authenticated caller acting outside its ownership
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates a disallowed status change
type ErrInvalidStateTransition struct {
	From interface{}
	To   interface{}
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %v to %v", e.From, e.To)
}

// ErrGateway indicates a non-success response from the payment gateway.
// Body carries the provider's raw error payload for logging and debugging.
type ErrGateway struct {
	StatusCode int
	Body       string
}

func (e *ErrGateway) Error() string {
	return fmt.Sprintf("payment gateway error: status %d, body: %s", e.StatusCode, e.Body)
}

package booking

import "fmt"

type ErrorCode string

const (
	CodeValidation      ErrorCode = "validation"
	CodeConflict        ErrorCode = "booking_conflict"
	CodePaymentRequired ErrorCode = "payment_required"
	CodeRemoteFailure   ErrorCode = "remote_failure"
	CodeNotFound        ErrorCode = "not_found"
	CodeForbidden       ErrorCode = "forbidden"
)

// BookingError is returned by every booking operation. errors.Is matches on Code.
type BookingError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error { return e.Err }

func (e *BookingError) Is(target error) bool {
	t, ok := target.(*BookingError)
	return ok && t.Code == e.Code
}

var (
	ErrValidation      = &BookingError{Code: CodeValidation, Message: "invalid request"}
	ErrBookingConflict = &BookingError{Code: CodeConflict, Message: "slot no longer available"}
	ErrPaymentRequired = &BookingError{Code: CodePaymentRequired, Message: "no usable payment method"}
	ErrRemoteFailure   = &BookingError{Code: CodeRemoteFailure, Message: "backend failure"}
	ErrNotFound        = &BookingError{Code: CodeNotFound, Message: "not found"}
	ErrForbidden       = &BookingError{Code: CodeForbidden, Message: "not allowed"}
)

func validationError(msg string) error {
	return &BookingError{Code: CodeValidation, Message: msg}
}

func conflictError(msg string) error {
	return &BookingError{Code: CodeConflict, Message: msg}
}

func paymentRequiredError(msg string) error {
	return &BookingError{Code: CodePaymentRequired, Message: msg}
}

func remoteError(msg string, err error) error {
	return &BookingError{Code: CodeRemoteFailure, Message: msg, Err: err}
}

func forbiddenError(msg string) error {
	return &BookingError{Code: CodeForbidden, Message: msg}
}

func notFoundError(msg string) error {
	return &BookingError{Code: CodeNotFound, Message: msg}
}

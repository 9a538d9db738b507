package services

import "errors"

// Validation failures. Handlers surface these verbatim as 400s; anything
// else out of a repo is a persistence problem and stays a 500.
var (
	ErrNoItems        = errors.New("add at least one line item")
	ErrNoPaidItem     = errors.New("at least one line item must be payable")
	ErrNoBuyer        = errors.New("buyer name is required")
	ErrBadEmail       = errors.New("e-mail address is not valid")
	ErrBadPhone       = errors.New("phone number is not valid")
	ErrBadDate        = errors.New("dates must be YYYY-MM-DD")
	ErrBadVolume      = errors.New("decant volume must be positive and on the standard menu")
	ErrUnknownPerfume = errors.New("line item references an unknown perfume")
	ErrPerfumeName    = errors.New("perfume name is required")
	ErrNegativeValue  = errors.New("volumes and prices cannot be negative")
	ErrBadStatus      = errors.New("status must be AVAILABLE or UNAVAILABLE")
)

// ErrNotFound covers stale ids: the record was deleted under the caller.
var ErrNotFound = errors.New("not found")

// IsValidation reports whether err is a user-input problem rather than a
// store failure.
func IsValidation(err error) bool {
	for _, e := range []error{
		ErrNoItems, ErrNoPaidItem, ErrNoBuyer, ErrBadEmail, ErrBadPhone,
		ErrBadDate, ErrBadVolume, ErrUnknownPerfume, ErrPerfumeName,
		ErrNegativeValue, ErrBadStatus,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

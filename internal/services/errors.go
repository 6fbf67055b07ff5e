package services

import "errors"

var (
	// ErrValidation indicates malformed input; the caller must resubmit.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound indicates the phone-key matched no record in any store.
	ErrNotFound = errors.New("participant not found")

	// ErrAlreadyCheckedIn indicates the target already checked in today;
	// state is unchanged.
	ErrAlreadyCheckedIn = errors.New("already checked in")

	// ErrStaffEditForbidden indicates an attempt to edit check-in or
	// checkout fields on a staff record via the admin endpoint.
	ErrStaffEditForbidden = errors.New("staff check-in state cannot be edited")
)

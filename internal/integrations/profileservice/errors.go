package profileservice

import "errors"

var (
	// ErrClientNotFound is returned when the profile service has no client
	// with the given id.
	ErrClientNotFound = errors.New("profileservice client: client not found")

	// ErrStaffNotFound is returned when the profile service has no staff
	// member with the given id.
	ErrStaffNotFound = errors.New("profileservice client: staff member not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("profileservice client: internal error")

	// ErrInvalidResponse is returned on an unexpected response from the service.
	ErrInvalidResponse = errors.New("profileservice client: invalid response")
)

package registration

import "errors"

var (
	// ErrRegistrationNotFound is returned when the registration does not exist
	ErrRegistrationNotFound = errors.New("registration.repository: registration not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("registration.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("registration.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("registration.repository: failed to scan row")
)

package workshopconfig

import "errors"

var (
	// ErrConfigNotFound is returned when the workshop config does not exist
	ErrConfigNotFound = errors.New("workshopconfig.repository: config not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("workshopconfig.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("workshopconfig.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("workshopconfig.repository: failed to scan row")
)

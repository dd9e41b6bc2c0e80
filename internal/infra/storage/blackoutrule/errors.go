package blackoutrule

import "errors"

var (
	// ErrRuleNotFound is returned when the blackout rule does not exist
	ErrRuleNotFound = errors.New("blackoutrule.repository: rule not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("blackoutrule.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute
	ErrExecQuery = errors.New("blackoutrule.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("blackoutrule.repository: failed to scan row")
)

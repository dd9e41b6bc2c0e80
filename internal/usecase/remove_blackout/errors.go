package remove_blackout

import "errors"

var (
	// ErrRuleNotFound is returned when the blackout rule does not exist
	ErrRuleNotFound = errors.New("remove_blackout: blackout rule not found")

	// ErrRuleMismatch is returned when the rule belongs to another workshop
	ErrRuleMismatch = errors.New("remove_blackout: rule belongs to another workshop")

	// ErrInvalidInput is returned on malformed input data
	ErrInvalidInput = errors.New("remove_blackout: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("remove_blackout: internal error")
)

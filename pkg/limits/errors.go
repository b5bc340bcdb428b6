package limits

import "errors"

var (
	ErrPlanNotFound             = errors.New("limits: plan not found")
	ErrInvalidPlanConfiguration = errors.New("limits: invalid plan configuration")
	ErrNilResolver              = errors.New("limits: plan resolver is required")

	ErrLimitExceeded       = errors.New("limits: limit exceeded")
	ErrInvalidResource     = errors.New("limits: invalid resource")
	ErrNoCounterRegistered = errors.New("limits: no counter registered")

	ErrFailedToLoadPlans  = errors.New("limits: failed to load plans")
	ErrFailedToCountUsage = errors.New("limits: failed to count resource usage")
)

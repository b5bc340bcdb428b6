package entities

import "errors"

var (
	ErrUnknownEntity = errors.New("unknown entity name")
	ErrBindFailed    = errors.New("failed to bind entities")
)

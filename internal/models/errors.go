package models

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden: access denied")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidStatus      = errors.New("request is not in a state that allows this action")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrRateLimited        = errors.New("upload rate limited, please retry later")
)

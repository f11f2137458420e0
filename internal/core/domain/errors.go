package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrDemoReadOnly = errors.New("demo mode is read-only")
)

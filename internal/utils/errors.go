package utils

import "errors"

// Common application errors used across services.
var (
	ErrDatabase = errors.New("DATABASE_ERROR")
)

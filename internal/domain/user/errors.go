package user

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrStorage            = errors.New("storage failure")
)

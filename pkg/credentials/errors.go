package credentials

import "errors"

var (
	ErrNoCredential = errors.New("credentials: no bearer credential stored")
	ErrEmptyToken   = errors.New("credentials: token is empty")
)

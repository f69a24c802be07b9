package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: delivery failed")
	ErrInvalidConfig     = errors.New("email: invalid sender configuration")
	ErrInvalidParams     = errors.New("email: invalid message")
)

package recipient

import "errors"

var (
	ErrInvalidEmail = errors.New("recipient: invalid email address")
	ErrDuplicate    = errors.New("recipient: already in the list")
	ErrNoMatch      = errors.New("recipient: no new email addresses found")
	ErrEmptyFile    = errors.New("recipient: no email addresses found in file")
	ErrEmptyExport  = errors.New("recipient: no email recipients to export")
	ErrInvalidGroup = errors.New("recipient: group key is required")
	ErrInvalidUser  = errors.New("recipient: user id is required")
	ErrReadFile     = errors.New("recipient: failed to read file")
)

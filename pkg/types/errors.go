package types

import "errors"

var (
	ErrReportNotFound       = errors.New("report not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrNegativeItemNotFound = errors.New("negative item not found")
	ErrViolationNotFound    = errors.New("violation not found")
	ErrLetterNotFound       = errors.New("letter not found")
)

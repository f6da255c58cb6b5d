package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrHabitNotFound = errors.New("habit doesn't exist")
	ErrWrongOwner    = errors.New("habit belongs to another user")
	ErrOwnerNotFound = errors.New("habit owner doesn't exist")

	ErrValidation  = errors.New("validation error")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

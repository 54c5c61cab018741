package domain

import "errors"

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrAlreadyVoted        = errors.New("user has already voted for this participant")
	ErrInvalidImport       = errors.New("invalid participant import data")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("user already exists")
	ErrInternal            = errors.New("internal server error")
)

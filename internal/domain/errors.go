package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
	ErrInvalidInput    = errors.New("invalid input")
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrEmailTaken      = errors.New("email already registered")
	ErrSessionRevoked  = errors.New("session revoked")
)

var (
	ErrEmptySelection = errors.New("no seats selected")
	ErrSeatBooked     = errors.New("seat already booked")
	ErrNotReady       = errors.New("session not ready")
)

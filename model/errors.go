package model

import "errors"

var (
	ErrEventDoesNotExist   = errors.New("event do not exist")
	ErrInvalidEvent        = errors.New("invalid event")
	ErrInvalidRegistration = errors.New("invalid registration")
)

package service

import "github.com/pkg/errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrForbidden       = errors.New("only the session owner may do that")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrDuplicateConn   = errors.New("connection already exists")
)

package domain

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when request parameters fail validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken is returned when registering with an email that
	// already belongs to an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on failed login or an expired
	// password reset token.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when a caller lacks a valid session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when a caller's role does not permit the
	// operation.
	ErrForbidden = errors.New("forbidden")
)

// Package common defines shared constants and sentinel errors used across
// client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrNoCredential = errors.New("no credential available")

	// Input validation.
	ErrorIncorrectInput = errors.New("incorrect input")
)

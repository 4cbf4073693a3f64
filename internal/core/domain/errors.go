package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Credential errors
var (
	ErrInvalidLogin        = errors.New("invalid email or password")
	ErrInvalidCredential   = errors.New("invalid credential")
	ErrExpiredCredential   = errors.New("credential expired")
	ErrMalformedCredential = errors.New("credential has no authority claim")
)

// Entity lookups; all of them satisfy errors.Is(err, ErrNotFound)
var (
	ErrQuestionNotFound    = fmt.Errorf("question %w", ErrNotFound)
	ErrAnswerNotFound      = fmt.Errorf("answer %w", ErrNotFound)
	ErrCustomerNotFound    = fmt.Errorf("customer %w", ErrNotFound)
	ErrBankerNotFound      = fmt.Errorf("banker %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrBranchNotFound      = fmt.Errorf("branch %w", ErrNotFound)
	ErrNoCustomerQuestions = fmt.Errorf("no question for this customer: %w", ErrNotFound)
)

// Engagement and content errors
var (
	ErrNoAnswerYet          = errors.New("question has no answer yet")
	ErrAnswerExists         = errors.New("question already has an answer")
	ErrConflictingVoteState = errors.New("conflicting vote state")
	ErrUpstreamStorage      = errors.New("file storage failure")
)

// ExpiredCredentialError is returned for a well-formed token whose expiry has
// passed. Subject stays readable for diagnostics only.
type ExpiredCredentialError struct {
	Subject string
}

func (e *ExpiredCredentialError) Error() string {
	return fmt.Sprintf("credential for %q expired", e.Subject)
}

func (e *ExpiredCredentialError) Unwrap() error {
	return ErrExpiredCredential
}

package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgCharacterExists    = "user already has a character"
	ErrMsgNodeNotFound       = "node not found"
	ErrMsgActivityNotFound   = "activity not found"
	ErrMsgSkillNotFound      = "skill not found"
	ErrMsgInsufficientPoints = "not enough stat points"
	ErrMsgNoRespecTokens     = "no respec tokens remaining"
	ErrMsgAlreadyAllocated   = "node already allocated"
	ErrMsgNodeUnreachable    = "node not reachable from current allocations"
	ErrMsgInvalidFormula     = "invalid formula"
	ErrMsgInvalidStatCode    = "invalid stat code"
	ErrMsgInvalidInput       = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrCharacterExists   = errors.New(ErrMsgCharacterExists)
	ErrNodeNotFound      = errors.New(ErrMsgNodeNotFound)
	ErrActivityNotFound  = errors.New(ErrMsgActivityNotFound)
	ErrSkillNotFound     = errors.New(ErrMsgSkillNotFound)

	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)
	ErrNoRespecTokens     = errors.New(ErrMsgNoRespecTokens)
	ErrAlreadyAllocated   = errors.New(ErrMsgAlreadyAllocated)
	ErrNodeUnreachable    = errors.New(ErrMsgNodeUnreachable)

	ErrInvalidFormula  = errors.New(ErrMsgInvalidFormula)
	ErrInvalidStatCode = errors.New(ErrMsgInvalidStatCode)
	ErrInvalidInput    = errors.New(ErrMsgInvalidInput)
)

package service

import "errors"

// Sentinel errors shared across services. Handlers map them to response codes.
var (
	ErrNotFound            = errors.New("record not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrWeakPassword        = errors.New("password does not meet policy")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrPhoneTaken          = errors.New("phone already registered")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrForbidden           = errors.New("operation not allowed for this account")
	ErrValidation          = errors.New("validation failed")
	ErrConflict            = errors.New("state conflict")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrKycNotApproved      = errors.New("kyc not approved")
	ErrProductUnavailable  = errors.New("product unavailable")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrDeliveryUnavailable = errors.New("delivery not available for destination")
	ErrJobAlreadyTaken     = errors.New("delivery job already taken")
	ErrOutsideCoverage     = errors.New("destination outside coverage area")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrBelowMinWithdrawal  = errors.New("amount below minimum withdrawal")
	ErrDuplicateDispute    = errors.New("order already has an open dispute")
	ErrRejectReasonMissing = errors.New("reject reason required")
)

package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Account errors
	ErrMsgAccountNotFound   = "account not found"
	ErrMsgInsufficientFunds = "insufficient funds"

	// Inventory errors
	ErrMsgInsufficientCopies = "insufficient copies"

	// Catalog errors
	ErrMsgCardNotFound = "card not found"

	// Marketplace errors
	ErrMsgListingNotFound = "listing not found"
	ErrMsgNotListingOwner = "not the listing owner"

	// Trade errors
	ErrMsgOfferNotFound         = "trade offer not found"
	ErrMsgOfferNotPending       = "trade offer is no longer pending"
	ErrMsgNotOfferCounterparty  = "not the offer counterparty"
	ErrMsgItemNoLongerAvailable = "item no longer available"

	// Reward errors
	ErrMsgBoosterNotAllowed = "booster claims are not enabled for this user"
	ErrMsgPackNotFound      = "pack not found"

	// Shared errors
	ErrMsgSelfOperation   = "operation targets yourself"
	ErrMsgNoEligibleCards = "no eligible cards"
	ErrMsgInvalidQuantity = "quantity must be at least 1"
	ErrMsgInvalidAmount   = "amount must be positive"
	ErrMsgLockdownActive  = "commands are locked down"

	// Transaction errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Account errors
	ErrAccountNotFound   = errors.New(ErrMsgAccountNotFound)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)

	// Inventory errors
	ErrInsufficientCopies = errors.New(ErrMsgInsufficientCopies)

	// Catalog errors
	ErrCardNotFound = errors.New(ErrMsgCardNotFound)

	// Marketplace errors
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrNotListingOwner = errors.New(ErrMsgNotListingOwner)

	// Trade errors
	ErrOfferNotFound         = errors.New(ErrMsgOfferNotFound)
	ErrOfferNotPending       = errors.New(ErrMsgOfferNotPending)
	ErrNotOfferCounterparty  = errors.New(ErrMsgNotOfferCounterparty)
	ErrItemNoLongerAvailable = errors.New(ErrMsgItemNoLongerAvailable)

	// Reward errors
	ErrBoosterNotAllowed = errors.New(ErrMsgBoosterNotAllowed)
	ErrPackNotFound      = errors.New(ErrMsgPackNotFound)

	// Shared errors
	ErrSelfOperation   = errors.New(ErrMsgSelfOperation)
	ErrNoEligibleCards = errors.New(ErrMsgNoEligibleCards)
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)
	ErrInvalidAmount   = errors.New(ErrMsgInvalidAmount)
	ErrLockdownActive  = errors.New(ErrMsgLockdownActive)
)

// InsufficientFundsError reports a failed debit along with the balance that was
// actually available when the guarded decrement ran.
type InsufficientFundsError struct {
	Available int64
	Required  int64
}

func (e InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: have %d, need %d", ErrMsgInsufficientFunds, e.Available, e.Required)
}

// Is allows errors.Is(err, domain.ErrInsufficientFunds) to match.
func (e InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// InsufficientCopiesError reports a failed copy removal along with the quantity
// the user actually held.
type InsufficientCopiesError struct {
	Available int
	Required  int
}

func (e InsufficientCopiesError) Error() string {
	return fmt.Sprintf("%s: have %d, need %d", ErrMsgInsufficientCopies, e.Available, e.Required)
}

// Is allows errors.Is(err, domain.ErrInsufficientCopies) to match.
func (e InsufficientCopiesError) Is(target error) bool {
	return target == ErrInsufficientCopies
}

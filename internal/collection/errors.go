package collection

import "errors"

var (
	// ErrNotEligible means a pack open was attempted with no daily allowance
	// and no inventory packs. The operation is a no-op.
	ErrNotEligible = errors.New("no pack available to open")

	// ErrEmptyRoster means an operation that draws from the roster was
	// attempted before any roster was loaded.
	ErrEmptyRoster = errors.New("roster is empty")

	// ErrInvalidSelection means a burn trade named the wrong number of cards
	// or more duplicates of a card than the collection holds.
	ErrInvalidSelection = errors.New("invalid duplicate selection")

	// ErrNothingToGrant means a burn trade was attempted while every roster
	// card is already owned. No duplicates are spent.
	ErrNothingToGrant = errors.New("no missing cards left to grant")

	// ErrNotRegistered gates mutating operations before registration.
	ErrNotRegistered = errors.New("user is not registered")
)

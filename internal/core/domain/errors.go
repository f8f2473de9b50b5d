package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmptyBody = errors.New("empty request body")
var ErrEmptyQuery = errors.New("empty query string")
var ErrDuplicateUser = errors.New("user already exists")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrDatesUnordered = errors.New("dates are unordered")
var ErrLoginRequired = errors.New("login required")
var ErrNoActiveUser = errors.New("no active user")
var ErrForbidden = errors.New("access forbidden")
var ErrNoUser = errors.New("user not found")
var ErrNoEntryFound = errors.New("entry not found")
var ErrNotFound = errors.New("not found")

// OutOfBoundsError signals a value outside the accepted [Min, Max] interval.
type OutOfBoundsError struct {
	Min int
	Max int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("value out of bounds, accepted range [%d, %d]", e.Min, e.Max)
}

// InvalidValueError signals a syntactically valid but semantically wrong input.
type InvalidValueError struct {
	Detail string
}

func (e *InvalidValueError) Error() string {
	return "invalid value: " + e.Detail
}

// DateFormatError signals an unparseable date, time or timestamp.
type DateFormatError struct {
	Detail string
}

func (e *DateFormatError) Error() string {
	return "unrecognised date format: " + e.Detail
}

// NoRecordError signals that no record exists for the requested day.
type NoRecordError struct {
	Date time.Time
}

func (e *NoRecordError) Error() string {
	return "no record for date " + e.Date.Format(DateLayout)
}

// BadRequestError is the catch-all 400 with a caller-supplied message.
type BadRequestError struct {
	Msg string
}

func (e *BadRequestError) Error() string { return e.Msg }

// StoreError wraps a failure of the relational record store. The wrapped
// cause is logged server-side and never surfaces on the wire.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// SessionStoreError wraps a failure of the key/value session store.
type SessionStoreError struct {
	Op  string
	Err error
}

func (e *SessionStoreError) Error() string {
	return fmt.Sprintf("session store: %s: %v", e.Op, e.Err)
}

func (e *SessionStoreError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned when a picture date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrFutureDate is returned when a picture date lies after today.
	ErrFutureDate = errors.New("date is in the future")
	// ErrUnknownBody is returned for a body key outside the fixed eight.
	ErrUnknownBody = errors.New("unknown body")
)

// Provider names the upstream feed a record or failure belongs to.
type Provider string

const (
	ProviderPicture  Provider = "apod"
	ProviderLaunches Provider = "launches"
	ProviderBodies   Provider = "bodies"
)

// FetchError is the single failure kind surfaced by the feed clients. A
// transport failure, a non-2xx status and an undecodable body all map to it;
// StatusCode is zero unless the provider answered.
type FetchError struct {
	Provider   Provider
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s fetch failed: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s fetch failed: %v", e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

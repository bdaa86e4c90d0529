// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRepoNotFound signals that the repository is not linked to a CLA.
	ErrRepoNotFound = errors.New("repo not found")
	// ErrInvalidLocator signals a gist URL without a usable gist id.
	ErrInvalidLocator = errors.New("invalid gist locator")
	// ErrTransport signals a failed call to the gist store or GitHub.
	ErrTransport = errors.New("transport error")
	// ErrParse signals a malformed gist response body.
	ErrParse = errors.New("parse error")
	// ErrPersistence signals a storage read or write fault.
	ErrPersistence = errors.New("persistence error")
)

// LocatorError is returned when a gist URL cannot be parsed.
type LocatorError struct {
	URL string
}

func (e *LocatorError) Error() string {
	url := e.URL
	if url == "" {
		url = "undefined"
	}
	return fmt.Sprintf("The gist url \"%s\" seems to be invalid", url)
}

// Is makes LocatorError match ErrInvalidLocator.
func (e *LocatorError) Is(target error) bool {
	return target == ErrInvalidLocator
}

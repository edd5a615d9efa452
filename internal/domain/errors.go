package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a brief that cannot be processed (empty or too short).
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyDomain signals a domain with zero documents at index build time.
	ErrEmptyDomain = errors.New("domain has no documents")
	// ErrCorpusLoad signals a malformed corpus that cannot be loaded.
	ErrCorpusLoad = errors.New("corpus load failed")
	// ErrUnknownDomain signals a reference to a domain outside the catalog.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrNoGeneration signals that no corpus generation has been loaded yet.
	ErrNoGeneration = errors.New("no corpus generation loaded")
)

// EmptyDomainError wraps ErrEmptyDomain with the offending domain name.
type EmptyDomainError struct {
	Domain Name
}

func (e *EmptyDomainError) Error() string {
	return fmt.Sprintf("%s: %s", ErrEmptyDomain.Error(), e.Domain)
}

func (e *EmptyDomainError) Unwrap() error { return ErrEmptyDomain }

// NewEmptyDomain creates an empty-domain error for the given domain.
func NewEmptyDomain(d Name) error {
	return &EmptyDomainError{Domain: d}
}

// ABOUTME: Error taxonomy for index construction and recommendation queries
// ABOUTME: Sentinels for errors.Is plus typed errors carrying the offending input
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCorpus is returned when an index is built from zero documents
	ErrEmptyCorpus = errors.New("corpus is empty")

	// ErrKeyNotFound is returned when a normalized key matches no document
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidArgument is returned for out-of-range query arguments
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateKey is returned when two documents normalize to the same key
	ErrDuplicateKey = errors.New("duplicate canonical key")

	// ErrIndexNotReady is returned by an Engine that has no index installed
	ErrIndexNotReady = errors.New("index not ready")
)

// KeyNotFoundError reports a query key with no matching document
type KeyNotFoundError struct {
	Key       string
	Canonical string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no talk matches %q (normalized %q)", e.Key, e.Canonical)
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// InvalidArgumentError reports an argument rejected at the query boundary
type InvalidArgumentError struct {
	Name  string
	Value int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s must be non-negative, got %d", e.Name, e.Value)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// DuplicateKeyError reports raw documents that collapse onto one canonical key.
// Positions are the input positions of every colliding document.
type DuplicateKeyError struct {
	Key       string
	Positions []int
}

func (e *DuplicateKeyError) Error() string {
	parts := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("canonical key %q is shared by documents at positions %s", e.Key, strings.Join(parts, ", "))
}

func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKey }

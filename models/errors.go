package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, also used to pick exit codes in the CLI entrypoints
var (
	BadParameterError = errors.New("bad parameter")

	NotFoundError = errors.New("not found")

	ConflictError = errors.New("duplicate value")
)

// DB related errors
var (
	ErrIgnoreRollBackError = errors.New("ignore rollback error")
)

// Audit ledger errors
var (
	// ErrChainRace is returned when two concurrent writers tried to append to
	// the same tenant chain and the losing insert would have forked it.
	ErrChainRace = errors.Wrap(ConflictError, "concurrent append to tenant audit chain")

	// ErrRootReferenced is returned when regenerating a daily root would change
	// a commitment that a passed verification already relied on.
	ErrRootReferenced = errors.Wrap(ConflictError,
		"audit root is referenced by a passed verification and cannot be replaced")
)

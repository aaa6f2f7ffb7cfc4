package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFileID indicates a value that is neither a Drive file ID
	// nor a URL containing one.
	ErrInvalidFileID = errors.New("invalid file ID")

	// ErrEmptyRoster indicates the roster produced no usable groups.
	ErrEmptyRoster = errors.New("roster contains no groups")

	// ErrNotAFolder indicates a folder operation was attempted on a
	// non-folder file.
	ErrNotAFolder = errors.New("not a folder")

	// ErrUnsupportedKind indicates an operation that only applies to a
	// specific file kind (stripping only applies to Google Docs).
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// Authentication Errors.

	// ErrCredentialsNotFound indicates no OAuth client credentials file
	// could be located. This is fatal at startup.
	ErrCredentialsNotFound = errors.New("credentials file not found")

	// ErrAuthRequired indicates no usable cached token exists and an
	// interactive login is needed.
	ErrAuthRequired = errors.New("authentication required")

	// ErrTokenInvalid indicates the cached token could not be read.
	// The caller falls back to a fresh interactive login.
	ErrTokenInvalid = errors.New("cached token invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

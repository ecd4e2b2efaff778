package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrParse            = errors.New("malformed xml")
	ErrTagger           = errors.New("tagger failure")
	ErrEmptyCorpus      = errors.New("corpus has no tokens")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

package nagifront

import (
	"fmt"

	"github.com/google/uuid"
)

// LexError reports that tokenizing or shaping source text failed before
// the engine ever ran.
type LexError struct {
	RunID uuid.UUID
	Err   error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("nagifront[%s]: lexing failed: %v", e.RunID, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }

// ParseError reports that the packrat engine failed to produce a match.
type ParseError struct {
	RunID uuid.UUID
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("nagifront[%s]: parsing failed: %v", e.RunID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ManifestError reports a problem loading, parsing, or validating a
// grammar manifest.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("nagifront: manifest %q: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error { return e.Err }

// CacheError reports a problem reading or writing a grammar cache file.
type CacheError struct {
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("nagifront: grammar cache %q: %v", e.Path, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

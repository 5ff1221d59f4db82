package parser

import (
	"errors"
	"fmt"

	"github.com/airworthy/adcheck/internal/rules"
)

// ErrorKind is the machine-readable classification of a parse failure.
type ErrorKind string

const (
	// ErrSectionNotFound: the applicability section header could not be
	// located. Fatal for the document.
	ErrSectionNotFound ErrorKind = "SECTION_NOT_FOUND"
	// ErrNoModels: section found but no model identifiers matched. Fatal;
	// an empty model list is never silently accepted.
	ErrNoModels ErrorKind = "NO_MODELS_EXTRACTED"
	// ErrNoSerialPredicate: models found but no MSN clause recognised in
	// a grammar whose phrasing set does contain MSN language. Fatal.
	ErrNoSerialPredicate ErrorKind = "NO_SERIAL_PREDICATE_EXTRACTED"
	// ErrAuthorityUnknown: the document names neither known authority.
	ErrAuthorityUnknown ErrorKind = "AUTHORITY_UNKNOWN"
	// ErrNoDirectiveID: no directive identifier matched the authority's
	// ID pattern.
	ErrNoDirectiveID ErrorKind = "NO_DIRECTIVE_ID"
)

// ParseError is a parse failure for one document. It aborts processing of
// that document only; batch callers surface it and continue. Span holds an
// excerpt of the offending text.
type ParseError struct {
	Kind      ErrorKind
	Authority rules.Authority
	Detail    string
	Span      string
}

func (e *ParseError) Error() string {
	if e.Span != "" {
		return fmt.Sprintf("%s parse failed [%s]: %s (near %q)", e.Authority, e.Kind, e.Detail, e.Span)
	}
	return fmt.Sprintf("%s parse failed [%s]: %s", e.Authority, e.Kind, e.Detail)
}

// KindOf returns the ErrorKind carried by err, or "" when err is not a
// ParseError.
func KindOf(err error) ErrorKind {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// excerpt trims s to a short span suitable for error reporting.
func excerpt(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
